// Package engine implements the rule-based resume/job compatibility
// scoring. Analyze is a pure function of its two input snapshots plus the
// immutable taxonomy, so results are deterministic for a given algorithm
// and taxonomy version.
package engine

import (
	"context"
	"sync"

	"github.com/resumatch/resumatch/internal/model"
	"github.com/resumatch/resumatch/internal/taxonomy"
)

const (
	// AlgorithmVersion stamps every completed result; bump on any change
	// to scoring behavior.
	AlgorithmVersion = "2.0.0"
	// NLPModelVersion identifies the normalization/fuzzy-matching scheme.
	NLPModelVersion = "enhanced_1.0"
)

// Config holds the tunable scoring knobs. Weights apply to the overall
// score and should sum to 1; Aggregate renormalizes if they do not.
type Config struct {
	SkillsWeight     float64
	KeywordsWeight   float64
	ExperienceWeight float64
	EducationWeight  float64

	// PreferredSkillRatio scales the weight of a preferred skill
	// relative to a required one.
	PreferredSkillRatio float64
	// FuzzyThreshold is the minimum similarity for a fuzzy skill match.
	FuzzyThreshold float64
	// TopKeywords caps how many weighted phrases are extracted from a
	// posting.
	TopKeywords int
	// MaxSkillsCompared bounds the per-analysis fuzzy comparison work.
	MaxSkillsCompared int

	// LowKeywordCoverage / LowExperienceScore are the sub-score
	// thresholds below which the suggestion generator speaks up.
	LowKeywordCoverage float64
	LowExperienceScore float64
}

// DefaultConfig returns the calibrated defaults. The aggregation weights
// are deliberately exposed as configuration (see internal/config) so they
// can be tuned without a code change.
func DefaultConfig() Config {
	return Config{
		SkillsWeight:        0.40,
		KeywordsWeight:      0.25,
		ExperienceWeight:    0.20,
		EducationWeight:     0.15,
		PreferredSkillRatio: 0.5,
		FuzzyThreshold:      0.8,
		TopKeywords:         20,
		MaxSkillsCompared:   200,
		LowKeywordCoverage:  50,
		LowExperienceScore:  60,
	}
}

// Report is the engine's output for one analysis run.
type Report struct {
	SkillsScore     float64
	KeywordsScore   float64
	ExperienceScore float64
	EducationScore  float64
	OverallScore    float64

	MatchedSkills []string
	MissingSkills []string
	Suggestions   []model.Suggestion
	ATSIssues     []model.ATSIssue

	missingRequired  []string
	missingPreferred []string
}

type Engine struct {
	taxonomy *taxonomy.Taxonomy
	cfg      Config
}

func New(tax *taxonomy.Taxonomy, cfg Config) *Engine {
	return &Engine{taxonomy: tax, cfg: cfg}
}

// Analyze runs the five matchers, aggregates their sub-scores and derives
// suggestions. The matchers only read their inputs and write their own
// result slot, so they run as independent goroutines joined before
// aggregation.
func (e *Engine) Analyze(ctx context.Context, resume *model.ResumeProfile, posting *model.JobPosting) (*Report, error) {
	report := &Report{}

	var (
		wg       sync.WaitGroup
		skills   skillOutcome
		keywords float64
		exp      float64
		edu      float64
		ats      []model.ATSIssue
	)

	wg.Add(5)
	go func() {
		defer wg.Done()
		skills = e.matchSkills(resume, posting)
	}()
	go func() {
		defer wg.Done()
		keywords = e.keywordScore(resume, posting)
	}()
	go func() {
		defer wg.Done()
		exp = e.experienceScore(resume, posting)
	}()
	go func() {
		defer wg.Done()
		edu = e.educationScore(resume, posting)
	}()
	go func() {
		defer wg.Done()
		ats = checkATS(resume)
	}()
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report.SkillsScore = round2(clamp(skills.score))
	report.KeywordsScore = round2(clamp(keywords))
	report.ExperienceScore = round2(clamp(exp))
	report.EducationScore = round2(clamp(edu))
	report.MatchedSkills = skills.matched
	report.MissingSkills = append(append([]string{}, skills.missingRequired...), skills.missingPreferred...)
	report.missingRequired = skills.missingRequired
	report.missingPreferred = skills.missingPreferred
	report.ATSIssues = ats

	report.OverallScore = e.aggregate(report)
	report.Suggestions = e.suggestions(report)

	return report, nil
}
