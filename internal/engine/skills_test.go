package engine

import (
	"math"
	"reflect"
	"testing"

	"github.com/resumatch/resumatch/internal/model"
	"github.com/resumatch/resumatch/internal/taxonomy"
)

func newTestEngine() *Engine {
	return New(taxonomy.Default(), DefaultConfig())
}

func resumeWithSkills(items ...string) *model.ResumeProfile {
	return &model.ResumeProfile{
		FullName: "Test Person",
		Skills:   model.SkillEntries{{Category: "Technical", Items: items}},
	}
}

func TestMatchSkillsPartialRequired(t *testing.T) {
	e := newTestEngine()
	resume := resumeWithSkills("Python", "PostgreSQL", "Docker")
	posting := &model.JobPosting{
		RequiredSkills: []string{"Python", "FastAPI", "PostgreSQL"},
	}

	out := e.matchSkills(resume, posting)

	if math.Abs(out.score-100.0*2/3) > 0.01 {
		t.Fatalf("score = %v, expected %v", out.score, 100.0*2/3)
	}
	if !reflect.DeepEqual(out.matched, []string{"Python", "PostgreSQL"}) {
		t.Fatalf("matched = %v", out.matched)
	}
	if !reflect.DeepEqual(out.missingRequired, []string{"FastAPI"}) {
		t.Fatalf("missingRequired = %v", out.missingRequired)
	}
}

func TestMatchSkillsNoFalseFuzzyMatch(t *testing.T) {
	e := newTestEngine()
	resume := resumeWithSkills("Python", "React", "FastAPI")
	posting := &model.JobPosting{
		RequiredSkills: []string{"Python", "React", "API development"},
	}

	out := e.matchSkills(resume, posting)

	// "API development" must not fuzzy-match "FastAPI"
	if !reflect.DeepEqual(out.missingRequired, []string{"API development"}) {
		t.Fatalf("missingRequired = %v", out.missingRequired)
	}
	if math.Abs(out.score-100.0*2/3) > 0.01 {
		t.Fatalf("score = %v, expected %v", out.score, 100.0*2/3)
	}
}

func TestMatchSkillsSynonyms(t *testing.T) {
	e := newTestEngine()
	resume := resumeWithSkills("GoLang", "K8s", "Postgres")
	posting := &model.JobPosting{
		RequiredSkills: []string{"Go", "Kubernetes", "PostgreSQL"},
	}

	out := e.matchSkills(resume, posting)

	if out.score != 100 {
		t.Fatalf("score = %v, expected 100 for synonym matches", out.score)
	}
	if len(out.missingRequired) != 0 {
		t.Fatalf("missingRequired = %v, expected none", out.missingRequired)
	}
}

func TestMatchSkillsFuzzyTypo(t *testing.T) {
	e := newTestEngine()
	// not in the dictionary, so only the fuzzy fallback can match it
	resume := resumeWithSkills("Kuberntes Operators")
	posting := &model.JobPosting{
		RequiredSkills: []string{"Kubernetes Operators"},
	}

	out := e.matchSkills(resume, posting)
	if out.score != 100 {
		t.Fatalf("score = %v, expected fuzzy match", out.score)
	}
}

func TestMatchSkillsPreferredWeight(t *testing.T) {
	e := newTestEngine()
	resume := resumeWithSkills("Go", "Docker")
	posting := &model.JobPosting{
		RequiredSkills:  []string{"Go"},
		PreferredSkills: []string{"Docker", "Terraform"},
	}

	out := e.matchSkills(resume, posting)

	// 1 required + 0.5 preferred matched out of 1 + 2*0.5 total weight
	if math.Abs(out.score-75) > 0.01 {
		t.Fatalf("score = %v, expected 75", out.score)
	}
	if !reflect.DeepEqual(out.missingPreferred, []string{"Terraform"}) {
		t.Fatalf("missingPreferred = %v", out.missingPreferred)
	}
}

func TestMatchSkillsNothingToSatisfy(t *testing.T) {
	e := newTestEngine()
	out := e.matchSkills(resumeWithSkills("Go"), &model.JobPosting{})
	if out.score != 100 {
		t.Fatalf("score = %v, expected 100 when the posting lists no skills", out.score)
	}
	if len(out.matched) != 0 || len(out.missingRequired) != 0 {
		t.Fatalf("expected empty skill lists, got %v / %v", out.matched, out.missingRequired)
	}
}

func TestMatchSkillsDuplicateListedAsBoth(t *testing.T) {
	e := newTestEngine()
	resume := resumeWithSkills("Rust")
	posting := &model.JobPosting{
		RequiredSkills:  []string{"Go"},
		PreferredSkills: []string{"go", "Rust"},
	}

	out := e.matchSkills(resume, posting)

	// "go" collapses into the required entry, leaving rust as the only
	// preferred skill
	if !reflect.DeepEqual(out.missingRequired, []string{"Go"}) {
		t.Fatalf("missingRequired = %v", out.missingRequired)
	}
	if !reflect.DeepEqual(out.matched, []string{"Rust"}) {
		t.Fatalf("matched = %v", out.matched)
	}
	total := len(out.matched) + len(out.missingRequired) + len(out.missingPreferred)
	if total != 2 {
		t.Fatalf("expected 2 distinct skills, got %d", total)
	}
}
