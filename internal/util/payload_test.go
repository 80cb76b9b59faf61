package util

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseResumePayloadGroupedSkills(t *testing.T) {
	body := []byte(`{
		"full_name": "Jordan Reyes",
		"email": "jordan@example.com",
		"summary": "Backend engineer",
		"skills": [
			{"category": "Languages", "items": ["Go", "Python"]},
			{"category": "Databases", "items": ["PostgreSQL"]}
		],
		"work_experience": [
			{"company": "Acme", "position": "Engineer", "start_date": "2020-01", "end_date": "Present", "description": "Built services"}
		],
		"education": [
			{"institution": "State University", "degree": "BSc", "field": "CS"}
		],
		"certifications": ["CKA"],
		"languages": ["English", "Spanish"]
	}`)

	resume, err := ParseResumePayload(body)
	if err != nil {
		t.Fatalf("ParseResumePayload: %v", err)
	}

	if resume.FullName != "Jordan Reyes" {
		t.Fatalf("full name = %q", resume.FullName)
	}
	if len(resume.Skills) != 2 || resume.Skills[0].Category != "Languages" {
		t.Fatalf("skills = %+v", resume.Skills)
	}
	if !reflect.DeepEqual(resume.SkillItems(), []string{"Go", "Python", "PostgreSQL"}) {
		t.Fatalf("skill items = %v", resume.SkillItems())
	}
	if len(resume.WorkExperience) != 1 || resume.WorkExperience[0].EndDate != "Present" {
		t.Fatalf("work experience = %+v", resume.WorkExperience)
	}
	if len(resume.Education) != 1 || resume.Education[0].Degree != "BSc" {
		t.Fatalf("education = %+v", resume.Education)
	}
	if !reflect.DeepEqual([]string(resume.Languages), []string{"English", "Spanish"}) {
		t.Fatalf("languages = %v", resume.Languages)
	}
}

func TestParseResumePayloadFlatSkills(t *testing.T) {
	body := []byte(`{"full_name": "Jordan", "skills": ["Go", "Docker", "Kubernetes"]}`)

	resume, err := ParseResumePayload(body)
	if err != nil {
		t.Fatalf("ParseResumePayload: %v", err)
	}
	if !reflect.DeepEqual(resume.SkillItems(), []string{"Go", "Docker", "Kubernetes"}) {
		t.Fatalf("skill items = %v", resume.SkillItems())
	}
}

func TestParseResumePayloadInvalidJSON(t *testing.T) {
	_, err := ParseResumePayload([]byte(`{"full_name": `))
	if !errors.Is(err, ErrInvalidJSON) {
		t.Fatalf("err = %v, expected ErrInvalidJSON", err)
	}
}

func TestParseJobPostingPayload(t *testing.T) {
	body := []byte(`{
		"title": "Backend Engineer",
		"company": "Acme",
		"seniority_level": "senior",
		"description": "Build services",
		"requirements": "Go and PostgreSQL",
		"required_skills": ["Go", "PostgreSQL"],
		"preferred_skills": ["Kubernetes"]
	}`)

	posting, err := ParseJobPostingPayload(body)
	if err != nil {
		t.Fatalf("ParseJobPostingPayload: %v", err)
	}
	if posting.Title != "Backend Engineer" || posting.SeniorityLevel != "senior" {
		t.Fatalf("posting = %+v", posting)
	}
	if !reflect.DeepEqual([]string(posting.RequiredSkills), []string{"Go", "PostgreSQL"}) {
		t.Fatalf("required skills = %v", posting.RequiredSkills)
	}
	if !reflect.DeepEqual([]string(posting.PreferredSkills), []string{"Kubernetes"}) {
		t.Fatalf("preferred skills = %v", posting.PreferredSkills)
	}
}

func TestParseJobPostingPayloadInvalidJSON(t *testing.T) {
	_, err := ParseJobPostingPayload([]byte(`not json`))
	if !errors.Is(err, ErrInvalidJSON) {
		t.Fatalf("err = %v, expected ErrInvalidJSON", err)
	}
}
