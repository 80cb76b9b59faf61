package engine

import (
	"strings"

	"github.com/resumatch/resumatch/internal/model"
	"github.com/resumatch/resumatch/internal/nlp"
)

// checkATS inspects the structured resume for patterns that commonly
// break automated parsers. The issues are informational: they ride along
// on the result but never deduct from the aggregate score, so content
// quality and format risk stay separate signals.
func checkATS(resume *model.ResumeProfile) []model.ATSIssue {
	issues := []model.ATSIssue{}

	if strings.TrimSpace(resume.Email) == "" {
		issues = append(issues, model.ATSIssue{
			Description: "Email address is missing; parsers cannot route the application without it",
			Severity:    model.SeverityHigh,
		})
	}
	if strings.TrimSpace(resume.Phone) == "" {
		issues = append(issues, model.ATSIssue{
			Description: "Phone number is missing from the contact information",
			Severity:    model.SeverityMedium,
		})
	}

	if len(resume.WorkExperience) == 0 {
		issues = append(issues, model.ATSIssue{
			Description: "No work experience section; most parsers expect one",
			Severity:    model.SeverityHigh,
		})
	}
	if len(resume.SkillItems()) == 0 {
		issues = append(issues, model.ATSIssue{
			Description: "No skills section; keyword filters will find nothing to match",
			Severity:    model.SeverityHigh,
		})
	}
	if len(resume.Education) == 0 {
		issues = append(issues, model.ATSIssue{
			Description: "No education section",
			Severity:    model.SeverityLow,
		})
	}

	for _, item := range resume.SkillItems() {
		if strings.ContainsAny(item, "\n\t•|") || len(item) > 60 {
			issues = append(issues, model.ATSIssue{
				Description: "Skill entries should be short plain-text terms, not formatted blocks",
				Severity:    model.SeverityMedium,
			})
			break
		}
	}

	if len(resume.WorkExperience) > 0 && !anyQuantifiedResult(resume.WorkExperience) {
		issues = append(issues, model.ATSIssue{
			Description: "Experience descriptions contain no quantified results (numbers, percentages)",
			Severity:    model.SeverityLow,
		})
	}

	if words := len(nlp.Tokenize(resume.AggregateText())); words < 100 {
		issues = append(issues, model.ATSIssue{
			Description: "Resume content appears too short for reliable automated parsing",
			Severity:    model.SeverityMedium,
		})
	}

	return issues
}

func anyQuantifiedResult(entries []model.WorkExperience) bool {
	for _, exp := range entries {
		if strings.ContainsAny(exp.Description, "0123456789%") {
			return true
		}
	}
	return false
}
