package engine

import (
	"fmt"

	"github.com/resumatch/resumatch/internal/model"
)

// suggestions derives the ordered improvement list from matcher gaps,
// highest priority first. The rules are fixed, so identical inputs under
// the same algorithm version always produce the same list.
func (e *Engine) suggestions(r *Report) []model.Suggestion {
	out := []model.Suggestion{}

	for _, skill := range r.missingRequired {
		out = append(out, model.Suggestion{
			Title:       fmt.Sprintf("Add %s", skill),
			Description: fmt.Sprintf("The posting lists %q as a required skill. Add it to your skills section if you have experience with it.", skill),
			Priority:    model.PriorityHigh,
		})
	}

	for _, issue := range r.ATSIssues {
		if issue.Severity == model.SeverityHigh {
			out = append(out, model.Suggestion{
				Title:       "Fix resume structure",
				Description: issue.Description,
				Priority:    model.PriorityHigh,
			})
		}
	}

	for _, skill := range r.missingPreferred {
		out = append(out, model.Suggestion{
			Title:       fmt.Sprintf("Add %s", skill),
			Description: fmt.Sprintf("%q is listed as a preferred skill and would strengthen your application.", skill),
			Priority:    model.PriorityMedium,
		})
	}

	if r.KeywordsScore < e.cfg.LowKeywordCoverage {
		out = append(out, model.Suggestion{
			Title:       "Mirror the posting's phrasing",
			Description: "Few of the posting's key phrases appear in your resume. Reuse its terminology in your summary and experience descriptions.",
			Priority:    model.PriorityMedium,
		})
	}

	if r.ExperienceScore < e.cfg.LowExperienceScore {
		out = append(out, model.Suggestion{
			Title:       "Foreground relevant experience",
			Description: "Your listed experience falls short of what this seniority level expects. Emphasize the most relevant positions and projects.",
			Priority:    model.PriorityMedium,
		})
	}

	for _, issue := range r.ATSIssues {
		if issue.Severity == model.SeverityMedium {
			out = append(out, model.Suggestion{
				Title:       "Improve resume formatting",
				Description: issue.Description,
				Priority:    model.PriorityMedium,
			})
		}
	}
	for _, issue := range r.ATSIssues {
		if issue.Severity == model.SeverityLow {
			out = append(out, model.Suggestion{
				Title:       "Polish resume details",
				Description: issue.Description,
				Priority:    model.PriorityLow,
			})
		}
	}

	return out
}
