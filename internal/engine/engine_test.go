package engine

import (
	"context"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/resumatch/resumatch/internal/model"
)

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// fullTestResume is a complete, well-formed profile that trips no ATS
// checks.
func fullTestResume() *model.ResumeProfile {
	return &model.ResumeProfile{
		FullName: "Jordan Reyes",
		Email:    "jordan.reyes@example.com",
		Phone:    "+1 555 0100",
		Location: "Austin, TX",
		Summary: "Backend engineer with eight years of experience designing and operating " +
			"distributed systems for payments and logistics platforms. Led migrations from " +
			"monolithic deployments to containerized microservices, built event driven " +
			"pipelines handling millions of daily messages, and mentored junior engineers " +
			"on reliability practices, observability and incident response across teams.",
		Skills: model.SkillEntries{
			{Category: "Languages", Items: []string{"Python", "Go", "SQL"}},
			{Category: "Infrastructure", Items: []string{"PostgreSQL", "Docker", "Kubernetes", "AWS"}},
		},
		WorkExperience: model.WorkExperiences{
			{
				Company:   "Freightline",
				Position:  "Senior Backend Engineer",
				StartDate: "2021-03",
				EndDate:   "Present",
				Description: "Designed the routing service in Go and Python, cut p99 latency by 40% " +
					"and scaled throughput to 2 million requests per day across 3 regions.",
			},
			{
				Company:   "Ledgerworks",
				Position:  "Backend Engineer",
				StartDate: "2017-06",
				EndDate:   "2021-02",
				Description: "Built reconciliation pipelines on PostgreSQL and Kafka processing " +
					"500k transactions daily, reduced settlement errors by 85%.",
			},
		},
		Education: model.Educations{
			{Institution: "University of Texas", Degree: "Bachelor of Science", Field: "Computer Science", StartDate: "2013", EndDate: "2017"},
		},
		Certifications: []string{"AWS Certified Solutions Architect"},
		Projects: model.Projects{
			{Name: "opentrace", Description: "Distributed tracing toolkit for internal services"},
		},
	}
}

func fullTestPosting() *model.JobPosting {
	return &model.JobPosting{
		Title:          "Senior Backend Engineer",
		Company:        "Acme",
		SeniorityLevel: model.SenioritySenior,
		Description: "We are looking for a senior backend engineer to build and operate " +
			"high throughput services on our logistics platform.",
		Requirements: "Bachelor's degree in computer science. Strong Python and PostgreSQL " +
			"experience. Production Kubernetes operations.",
		RequiredSkills:  []string{"Python", "PostgreSQL", "Kubernetes"},
		PreferredSkills: []string{"Terraform"},
	}
}

func TestAnalyzeScoresWithinRange(t *testing.T) {
	e := newTestEngine()
	report, err := e.Analyze(context.Background(), fullTestResume(), fullTestPosting())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	for name, score := range map[string]float64{
		"overall":    report.OverallScore,
		"skills":     report.SkillsScore,
		"keywords":   report.KeywordsScore,
		"experience": report.ExperienceScore,
		"education":  report.EducationScore,
	} {
		if score < 0 || score > 100 {
			t.Fatalf("%s score %v out of [0,100]", name, score)
		}
		if math.Round(score*100)/100 != score {
			t.Fatalf("%s score %v not rounded to two decimals", name, score)
		}
	}

	// 3 required matched, the preferred terraform missing: 3 / 3.5
	if math.Abs(report.SkillsScore-85.71) > 0.01 {
		t.Fatalf("skills score = %v, expected 85.71", report.SkillsScore)
	}
	if report.ExperienceScore != 100 {
		t.Fatalf("experience score = %v, expected 100 for 8+ years against senior band", report.ExperienceScore)
	}
	if report.EducationScore != 100 {
		t.Fatalf("education score = %v, expected 100", report.EducationScore)
	}
}

func TestAnalyzeSkillListsPartitionPostingSkills(t *testing.T) {
	e := newTestEngine()
	resume := resumeWithSkills("Python", "PostgreSQL", "Docker")
	posting := &model.JobPosting{
		Title:           "Backend Engineer",
		Description:     "Backend role",
		RequiredSkills:  []string{"Python", "FastAPI", "PostgreSQL"},
		PreferredSkills: []string{"Docker", "Terraform"},
	}

	report, err := e.Analyze(context.Background(), resume, posting)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if !reflect.DeepEqual(report.MatchedSkills, []string{"Python", "PostgreSQL", "Docker"}) {
		t.Fatalf("matched = %v", report.MatchedSkills)
	}
	if !reflect.DeepEqual(report.MissingSkills, []string{"FastAPI", "Terraform"}) {
		t.Fatalf("missing = %v", report.MissingSkills)
	}

	seen := map[string]bool{}
	for _, s := range append(append([]string{}, report.MatchedSkills...), report.MissingSkills...) {
		if seen[s] {
			t.Fatalf("skill %q appears in both matched and missing", s)
		}
		seen[s] = true
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	e := newTestEngine()
	resume := fullTestResume()
	// pin ongoing entries so the clock cannot move between runs
	resume.WorkExperience[0].EndDate = "2026-08"
	posting := fullTestPosting()

	first, err := e.Analyze(context.Background(), resume, posting)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	second, err := e.Analyze(context.Background(), resume, posting)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs produced different reports:\n%+v\n%+v", first, second)
	}
}

func TestAnalyzeCancelledContext(t *testing.T) {
	e := newTestEngine()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := e.Analyze(ctx, fullTestResume(), fullTestPosting()); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}

func TestSuggestionsOrderedByPriority(t *testing.T) {
	e := newTestEngine()
	resume := &model.ResumeProfile{
		FullName: "Test Person",
		Skills:   model.SkillEntries{{Items: []string{"Excel"}}},
	}
	posting := &model.JobPosting{
		Title:           "Senior Backend Engineer",
		SeniorityLevel:  model.SenioritySenior,
		Description:     "Backend services in Go on Kubernetes",
		RequiredSkills:  []string{"Go", "Kubernetes"},
		PreferredSkills: []string{"Terraform"},
	}

	report, err := e.Analyze(context.Background(), resume, posting)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(report.Suggestions) == 0 {
		t.Fatalf("expected suggestions for a weak match")
	}

	rank := map[string]int{
		model.PriorityHigh:   0,
		model.PriorityMedium: 1,
		model.PriorityLow:    2,
	}
	for i := 1; i < len(report.Suggestions); i++ {
		prev, cur := report.Suggestions[i-1], report.Suggestions[i]
		if rank[cur.Priority] < rank[prev.Priority] {
			t.Fatalf("suggestion %d (%s) ranked above earlier %s", i, cur.Priority, prev.Priority)
		}
	}

	if report.Suggestions[0].Priority != model.PriorityHigh {
		t.Fatalf("first suggestion priority = %s, expected high", report.Suggestions[0].Priority)
	}
	if !containsFold(report.Suggestions[0].Title, "Go") {
		t.Fatalf("first suggestion should name the first missing required skill, got %q", report.Suggestions[0].Title)
	}
}
