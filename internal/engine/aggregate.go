package engine

import "math"

// aggregate combines the four sub-scores into the overall score using the
// configured weights. Weights are renormalized by their sum so a slightly
// off configuration degrades gracefully instead of breaking the [0,100]
// invariant.
func (e *Engine) aggregate(r *Report) float64 {
	totalWeight := e.cfg.SkillsWeight + e.cfg.KeywordsWeight + e.cfg.ExperienceWeight + e.cfg.EducationWeight
	if totalWeight <= 0 {
		return 0
	}

	sum := r.SkillsScore*e.cfg.SkillsWeight +
		r.KeywordsScore*e.cfg.KeywordsWeight +
		r.ExperienceScore*e.cfg.ExperienceWeight +
		r.EducationScore*e.cfg.EducationWeight

	return round2(clamp(sum / totalWeight))
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
