package engine

import (
	"strings"
	"time"

	"github.com/resumatch/resumatch/internal/model"
	"github.com/resumatch/resumatch/internal/nlp"
)

// seniorityBands maps a posting's seniority level to the expected range
// of years. Max < 0 means open-ended.
var seniorityBands = map[string]struct{ Min, Max float64 }{
	model.SeniorityEntry:     {0, 2},
	model.SeniorityMid:       {2, 5},
	model.SenioritySenior:    {5, 10},
	model.SeniorityLead:      {8, -1},
	model.SeniorityPrincipal: {8, -1},
	model.SeniorityExecutive: {10, -1},
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"01/2006",
	"Jan 2006",
	"January 2006",
	"2006",
}

var currentMarkers = map[string]bool{
	"": true, "current": true, "present": true, "now": true, "ongoing": true, "today": true,
}

// experienceScore compares accumulated months of relevant experience to
// the band the posting's seniority level expects. Experience inside or
// above the band scores 100; below it, credit grows linearly with the
// fraction of the band minimum reached. Entries with unparseable dates
// are skipped rather than failing the analysis.
func (e *Engine) experienceScore(resume *model.ResumeProfile, posting *model.JobPosting) float64 {
	band, ok := seniorityBands[posting.SeniorityLevel]
	if !ok {
		// No seniority expectation stated; nothing to fall short of.
		return 100
	}

	months := relevantMonths(resume, posting, time.Now())
	years := float64(months) / 12

	if band.Min == 0 || years >= band.Min {
		return 100
	}
	return years / band.Min * 100
}

// relevantMonths totals the months of entries whose position or
// description overlaps the posting's domain keywords. If nothing
// overlaps, all parseable entries count.
func relevantMonths(resume *model.ResumeProfile, posting *model.JobPosting, now time.Time) int {
	keywords := domainKeywords(posting)

	total := 0
	relevant := 0
	anyRelevant := false

	for _, exp := range resume.WorkExperience {
		m, ok := entryMonths(exp, now)
		if !ok {
			continue
		}
		total += m
		if overlapsKeywords(exp, keywords) {
			relevant += m
			anyRelevant = true
		}
	}

	if anyRelevant {
		return relevant
	}
	return total
}

func entryMonths(exp model.WorkExperience, now time.Time) (int, bool) {
	start, ok := parseDate(exp.StartDate)
	if !ok {
		return 0, false
	}

	end := now
	if !currentMarkers[strings.ToLower(strings.TrimSpace(exp.EndDate))] {
		end, ok = parseDate(exp.EndDate)
		if !ok {
			return 0, false
		}
	}
	if end.Before(start) {
		return 0, false
	}

	months := int(end.Year()-start.Year())*12 + int(end.Month()-start.Month())
	if months < 0 {
		return 0, false
	}
	return months, true
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func domainKeywords(posting *model.JobPosting) map[string]bool {
	keywords := make(map[string]bool)
	for _, t := range nlp.ContentTokens(posting.Title) {
		if len(t) > 2 {
			keywords[t] = true
		}
	}
	for _, s := range posting.RequiredSkills {
		for _, t := range nlp.ContentTokens(s) {
			if len(t) > 2 {
				keywords[t] = true
			}
		}
	}
	return keywords
}

func overlapsKeywords(exp model.WorkExperience, keywords map[string]bool) bool {
	if len(keywords) == 0 {
		return false
	}
	for _, t := range nlp.ContentTokens(exp.Position + " " + exp.Description) {
		if keywords[t] {
			return true
		}
	}
	return false
}
