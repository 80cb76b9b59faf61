package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

// SkillEntry groups free-text skill items under a category heading,
// e.g. {Category: "Languages", Items: ["Python", "Go"]}.
type SkillEntry struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

type SkillEntries []SkillEntry

func (e SkillEntries) Value() (driver.Value, error) { return jsonbValue([]SkillEntry(e)) }
func (e *SkillEntries) Scan(src any) error          { return jsonbScan(src, e) }

// WorkExperience is a single employment entry. EndDate is empty or
// "current"/"present" for an ongoing position.
type WorkExperience struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
}

type WorkExperiences []WorkExperience

func (e WorkExperiences) Value() (driver.Value, error) { return jsonbValue([]WorkExperience(e)) }
func (e *WorkExperiences) Scan(src any) error          { return jsonbScan(src, e) }

type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

type Educations []Education

func (e Educations) Value() (driver.Value, error) { return jsonbValue([]Education(e)) }
func (e *Educations) Scan(src any) error          { return jsonbScan(src, e) }

type Project struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Projects []Project

func (p Projects) Value() (driver.Value, error) { return jsonbValue([]Project(p)) }
func (p *Projects) Scan(src any) error          { return jsonbScan(src, p) }

// ResumeProfile is the structured resume snapshot the engine analyzes.
// Parsing of raw PDF/DOCX files happens upstream; by the time a profile
// reaches this service it is already field-structured.
type ResumeProfile struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FullName       string          `gorm:"type:varchar(255)" json:"full_name"`
	Email          string          `gorm:"type:varchar(255)" json:"email"`
	Phone          string          `gorm:"type:varchar(50)" json:"phone"`
	Location       string          `gorm:"type:varchar(255)" json:"location"`
	Summary        string          `gorm:"type:text" json:"summary"`
	Skills         SkillEntries    `gorm:"type:jsonb" json:"skills"`
	WorkExperience WorkExperiences `gorm:"type:jsonb" json:"work_experience"`
	Education      Educations      `gorm:"type:jsonb" json:"education"`
	Certifications StringList      `gorm:"type:jsonb" json:"certifications"`
	Projects       Projects        `gorm:"type:jsonb" json:"projects"`
	Languages      StringList      `gorm:"type:jsonb" json:"languages"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (r *ResumeProfile) TableName() string {
	return "resume_profiles"
}

// SkillItems flattens all skill entries into a single ordered list.
func (r *ResumeProfile) SkillItems() []string {
	var items []string
	for _, entry := range r.Skills {
		items = append(items, entry.Items...)
	}
	return items
}

// AggregateText joins every free-text field of the resume; the keyword
// analyzer measures phrase coverage against it.
func (r *ResumeProfile) AggregateText() string {
	parts := []string{r.Summary}
	for _, exp := range r.WorkExperience {
		parts = append(parts, exp.Position, exp.Description)
	}
	for _, entry := range r.Skills {
		parts = append(parts, entry.Items...)
	}
	for _, p := range r.Projects {
		parts = append(parts, p.Name, p.Description)
	}
	for _, edu := range r.Education {
		parts = append(parts, edu.Degree, edu.Field)
	}
	parts = append(parts, r.Certifications...)

	text := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if text != "" {
			text += " "
		}
		text += p
	}
	return text
}
