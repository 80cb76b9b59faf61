package engine

import (
	"github.com/resumatch/resumatch/internal/model"
	"github.com/resumatch/resumatch/internal/nlp"
)

type skillOutcome struct {
	matched          []string
	missingRequired  []string
	missingPreferred []string
	score            float64
}

// matchSkills compares the resume's skill set against the posting's
// required and preferred skills. Required skills carry full weight,
// preferred ones PreferredSkillRatio. Matching tries the taxonomy first
// (canonical names and synonyms), then falls back to fuzzy similarity
// against the raw resume skills. With nothing to satisfy the score is 100.
func (e *Engine) matchSkills(resume *model.ResumeProfile, posting *model.JobPosting) skillOutcome {
	out := skillOutcome{
		matched:          []string{},
		missingRequired:  []string{},
		missingPreferred: []string{},
	}

	resumeSkills := resume.SkillItems()
	if len(resumeSkills) > e.cfg.MaxSkillsCompared {
		resumeSkills = resumeSkills[:e.cfg.MaxSkillsCompared]
	}

	// Canonical and normalized views of the resume skills, built once.
	canonical := make(map[string]bool, len(resumeSkills))
	normalized := make([]string, 0, len(resumeSkills))
	for _, s := range resumeSkills {
		if c, ok := e.taxonomy.Canonicalize(s); ok {
			canonical[c] = true
		}
		if n := nlp.Normalize(s); n != "" {
			normalized = append(normalized, n)
		}
	}

	required := dedupeSkills(posting.RequiredSkills, nil)
	preferred := dedupeSkills(posting.PreferredSkills, required)

	totalWeight := float64(len(required)) + e.cfg.PreferredSkillRatio*float64(len(preferred))
	if totalWeight == 0 {
		out.score = 100
		return out
	}

	matchedWeight := 0.0
	for _, skill := range required {
		if e.skillPresent(skill, canonical, normalized) {
			out.matched = append(out.matched, skill)
			matchedWeight++
		} else {
			out.missingRequired = append(out.missingRequired, skill)
		}
	}
	for _, skill := range preferred {
		if e.skillPresent(skill, canonical, normalized) {
			out.matched = append(out.matched, skill)
			matchedWeight += e.cfg.PreferredSkillRatio
		} else {
			out.missingPreferred = append(out.missingPreferred, skill)
		}
	}

	out.score = matchedWeight / totalWeight * 100
	return out
}

func (e *Engine) skillPresent(skill string, canonical map[string]bool, normalized []string) bool {
	if c, ok := e.taxonomy.Canonicalize(skill); ok && canonical[c] {
		return true
	}

	norm := nlp.Normalize(skill)
	if norm == "" {
		return false
	}
	for _, rs := range normalized {
		if rs == norm {
			return true
		}
		if nlp.Similarity(norm, rs) >= e.cfg.FuzzyThreshold {
			return true
		}
	}
	return false
}

// dedupeSkills keeps posting order, drops duplicates and anything already
// present in the exclude list. A skill listed both as required and
// preferred counts only as required, which keeps matched and missing
// disjoint.
func dedupeSkills(skills, exclude []string) []string {
	seen := make(map[string]bool, len(exclude))
	for _, s := range exclude {
		seen[nlp.Normalize(s)] = true
	}
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		n := nlp.Normalize(s)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, s)
	}
	return out
}
