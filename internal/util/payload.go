package util

import (
	"errors"

	"github.com/tidwall/gjson"

	"github.com/resumatch/resumatch/internal/model"
)

var ErrInvalidJSON = errors.New("body is not valid JSON")

// ParseResumePayload decodes a resume document from a request body.
// Clients send skills either as a flat string array or grouped under
// category headings; both land in the same structure.
func ParseResumePayload(body []byte) (*model.ResumeProfile, error) {
	if !gjson.ValidBytes(body) {
		return nil, ErrInvalidJSON
	}
	doc := gjson.ParseBytes(body)

	resume := &model.ResumeProfile{
		FullName: doc.Get("full_name").String(),
		Email:    doc.Get("email").String(),
		Phone:    doc.Get("phone").String(),
		Location: doc.Get("location").String(),
		Summary:  doc.Get("summary").String(),
	}

	doc.Get("skills").ForEach(func(_, entry gjson.Result) bool {
		if entry.Type == gjson.String {
			// flat list: collect under a single unnamed category
			if len(resume.Skills) == 0 || resume.Skills[len(resume.Skills)-1].Category != "" {
				resume.Skills = append(resume.Skills, model.SkillEntry{})
			}
			last := &resume.Skills[len(resume.Skills)-1]
			last.Items = append(last.Items, entry.String())
			return true
		}
		resume.Skills = append(resume.Skills, model.SkillEntry{
			Category: entry.Get("category").String(),
			Items:    stringSlice(entry.Get("items")),
		})
		return true
	})

	doc.Get("work_experience").ForEach(func(_, entry gjson.Result) bool {
		resume.WorkExperience = append(resume.WorkExperience, model.WorkExperience{
			Company:     entry.Get("company").String(),
			Position:    entry.Get("position").String(),
			StartDate:   entry.Get("start_date").String(),
			EndDate:     entry.Get("end_date").String(),
			Description: entry.Get("description").String(),
		})
		return true
	})

	doc.Get("education").ForEach(func(_, entry gjson.Result) bool {
		resume.Education = append(resume.Education, model.Education{
			Institution: entry.Get("institution").String(),
			Degree:      entry.Get("degree").String(),
			Field:       entry.Get("field").String(),
			StartDate:   entry.Get("start_date").String(),
			EndDate:     entry.Get("end_date").String(),
		})
		return true
	})

	doc.Get("projects").ForEach(func(_, entry gjson.Result) bool {
		resume.Projects = append(resume.Projects, model.Project{
			Name:        entry.Get("name").String(),
			Description: entry.Get("description").String(),
		})
		return true
	})

	resume.Certifications = stringSlice(doc.Get("certifications"))
	resume.Languages = stringSlice(doc.Get("languages"))

	return resume, nil
}

// ParseJobPostingPayload decodes a job posting from a request body.
func ParseJobPostingPayload(body []byte) (*model.JobPosting, error) {
	if !gjson.ValidBytes(body) {
		return nil, ErrInvalidJSON
	}
	doc := gjson.ParseBytes(body)

	posting := &model.JobPosting{
		Title:            doc.Get("title").String(),
		Company:          doc.Get("company").String(),
		Location:         doc.Get("location").String(),
		JobType:          doc.Get("job_type").String(),
		SeniorityLevel:   doc.Get("seniority_level").String(),
		Description:      doc.Get("description").String(),
		Requirements:     doc.Get("requirements").String(),
		Responsibilities: doc.Get("responsibilities").String(),
		Benefits:         doc.Get("benefits").String(),
		RequiredSkills:   stringSlice(doc.Get("required_skills")),
		PreferredSkills:  stringSlice(doc.Get("preferred_skills")),
	}

	return posting, nil
}

func stringSlice(value gjson.Result) []string {
	var out []string
	value.ForEach(func(_, item gjson.Result) bool {
		if s := item.String(); s != "" {
			out = append(out, s)
		}
		return true
	})
	return out
}
