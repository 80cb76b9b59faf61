package model

import (
	"time"

	"github.com/google/uuid"
)

// Seniority levels a posting can declare. The experience matcher maps
// each level to an expected band of years.
const (
	SeniorityEntry     = "entry"
	SeniorityMid       = "mid"
	SenioritySenior    = "senior"
	SeniorityLead      = "lead"
	SeniorityPrincipal = "principal"
	SeniorityExecutive = "executive"
)

// ValidSeniority reports whether level is one of the known values.
// Empty is allowed; it means the posting did not state one.
func ValidSeniority(level string) bool {
	switch level {
	case "", SeniorityEntry, SeniorityMid, SenioritySenior,
		SeniorityLead, SeniorityPrincipal, SeniorityExecutive:
		return true
	}
	return false
}

type JobPosting struct {
	ID               uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title            string     `gorm:"type:varchar(255)" json:"title"`
	Company          string     `gorm:"type:varchar(255)" json:"company"`
	Location         string     `gorm:"type:varchar(255)" json:"location"`
	JobType          string     `gorm:"type:varchar(50)" json:"job_type"`
	SeniorityLevel   string     `gorm:"type:varchar(50)" json:"seniority_level"`
	Description      string     `gorm:"type:text" json:"description"`
	Requirements     string     `gorm:"type:text" json:"requirements"`
	Responsibilities string     `gorm:"type:text" json:"responsibilities"`
	Benefits         string     `gorm:"type:text" json:"benefits"`
	RequiredSkills   StringList `gorm:"type:jsonb" json:"required_skills"`
	PreferredSkills  StringList `gorm:"type:jsonb" json:"preferred_skills"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (j *JobPosting) TableName() string {
	return "job_postings"
}

// AnalysisText is the posting text keyword phrases are extracted from.
func (j *JobPosting) AnalysisText() string {
	text := j.Description
	if j.Requirements != "" {
		text += " " + j.Requirements
	}
	return text
}
