package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/resumatch/resumatch/internal/model"
)

type StartAnalysisRequest struct {
	ResumeID     string `json:"resume_id"`
	JobPostingID string `json:"job_posting_id"`
}

type AnalysisDTO struct {
	ID           uuid.UUID `json:"id"`
	ResumeID     uuid.UUID `json:"resume_id"`
	JobPostingID uuid.UUID `json:"job_posting_id"`
	Status       string    `json:"status"` // "pending", "processing", "completed", "failed"
	ErrorMessage *string   `json:"error_message,omitempty"`

	OverallScore    float64 `json:"overall_score"`
	SkillsScore     float64 `json:"skills_score"`
	KeywordsScore   float64 `json:"keywords_score"`
	ExperienceScore float64 `json:"experience_score"`
	EducationScore  float64 `json:"education_score"`

	MatchedSkills []string           `json:"matched_skills"`
	MissingSkills []string           `json:"missing_skills"`
	Suggestions   []model.Suggestion `json:"suggestions"`
	ATSIssues     []model.ATSIssue   `json:"ats_issues"`

	ProcessingTimeSeconds    float64 `json:"processing_time_seconds"`
	AnalysisAlgorithmVersion string  `json:"analysis_algorithm_version"`
	NLPModelVersion          string  `json:"nlp_model_version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewAnalysisDTO(a *model.AnalysisResult) AnalysisDTO {
	d := AnalysisDTO{
		ID:                       a.ID,
		ResumeID:                 a.ResumeID,
		JobPostingID:             a.JobPostingID,
		Status:                   a.Status,
		ErrorMessage:             a.ErrorMessage,
		OverallScore:             a.OverallScore,
		SkillsScore:              a.SkillsScore,
		KeywordsScore:            a.KeywordsScore,
		ExperienceScore:          a.ExperienceScore,
		EducationScore:           a.EducationScore,
		MatchedSkills:            a.MatchedSkills,
		MissingSkills:            a.MissingSkills,
		Suggestions:              a.Suggestions,
		ATSIssues:                a.ATSIssues,
		ProcessingTimeSeconds:    a.ProcessingTimeSeconds,
		AnalysisAlgorithmVersion: a.AnalysisAlgorithmVersion,
		NLPModelVersion:          a.NLPModelVersion,
		CreatedAt:                a.CreatedAt,
		UpdatedAt:                a.UpdatedAt,
	}
	if a.Status == model.StatusCompleted {
		// completed results always carry arrays, even empty ones
		if d.MatchedSkills == nil {
			d.MatchedSkills = []string{}
		}
		if d.MissingSkills == nil {
			d.MissingSkills = []string{}
		}
		if d.Suggestions == nil {
			d.Suggestions = []model.Suggestion{}
		}
		if d.ATSIssues == nil {
			d.ATSIssues = []model.ATSIssue{}
		}
	}
	return d
}
