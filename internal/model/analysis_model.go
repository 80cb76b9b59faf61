package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

// Analysis status values. Transitions are one-directional:
// pending -> processing -> completed | failed. Terminal records are
// never rewritten; re-analysis creates a new identity.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Suggestion priorities, high to low.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// ATS issue severities.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

type Suggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

type Suggestions []Suggestion

func (s Suggestions) Value() (driver.Value, error) { return jsonbValue([]Suggestion(s)) }
func (s *Suggestions) Scan(src any) error          { return jsonbScan(src, s) }

type ATSIssue struct {
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

type ATSIssues []ATSIssue

func (i ATSIssues) Value() (driver.Value, error) { return jsonbValue([]ATSIssue(i)) }
func (i *ATSIssues) Scan(src any) error          { return jsonbScan(src, i) }

// AnalysisResult is one resume/posting compatibility assessment.
// All scores are in [0,100]; matched and missing skills are disjoint and
// together cover the posting's required+preferred skill set.
type AnalysisResult struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ResumeID     uuid.UUID `gorm:"type:uuid;index" json:"resume_id"`
	JobPostingID uuid.UUID `gorm:"type:uuid;index" json:"job_posting_id"`

	Status       string  `gorm:"type:varchar(50)" json:"status"`
	ErrorMessage *string `gorm:"type:text" json:"error_message"`

	OverallScore    float64 `gorm:"type:float" json:"overall_score"`
	SkillsScore     float64 `gorm:"type:float" json:"skills_score"`
	KeywordsScore   float64 `gorm:"type:float" json:"keywords_score"`
	ExperienceScore float64 `gorm:"type:float" json:"experience_score"`
	EducationScore  float64 `gorm:"type:float" json:"education_score"`

	MatchedSkills StringList  `gorm:"type:jsonb" json:"matched_skills"`
	MissingSkills StringList  `gorm:"type:jsonb" json:"missing_skills"`
	Suggestions   Suggestions `gorm:"type:jsonb" json:"suggestions"`
	ATSIssues     ATSIssues   `gorm:"type:jsonb" json:"ats_issues"`

	ProcessingTimeSeconds    float64 `gorm:"type:float" json:"processing_time_seconds"`
	AnalysisAlgorithmVersion string  `gorm:"type:varchar(100)" json:"analysis_algorithm_version"`
	NLPModelVersion          string  `gorm:"type:varchar(100);column:nlp_model_version" json:"nlp_model_version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *AnalysisResult) TableName() string {
	return "analysis_results"
}

// Terminal reports whether the record reached a final state.
func (a *AnalysisResult) Terminal() bool {
	return a.Status == StatusCompleted || a.Status == StatusFailed
}
