package config

import (
	"sync"
	"time"

	"github.com/spf13/viper"

	"github.com/resumatch/resumatch/internal/engine"
)

// AnalysisConfig exposes every scoring knob as named configuration so the
// weights can be recalibrated without a code change.
type AnalysisConfig struct {
	Engine  engine.Config
	Timeout time.Duration
}

var (
	analysisConfig *AnalysisConfig
	analysisOnce   sync.Once
)

func LoadAnalysisConfig() *AnalysisConfig {
	analysisOnce.Do(func() {
		def := engine.DefaultConfig()

		v := viper.New()
		v.AutomaticEnv()
		v.SetDefault("ANALYSIS_SKILLS_WEIGHT", def.SkillsWeight)
		v.SetDefault("ANALYSIS_KEYWORDS_WEIGHT", def.KeywordsWeight)
		v.SetDefault("ANALYSIS_EXPERIENCE_WEIGHT", def.ExperienceWeight)
		v.SetDefault("ANALYSIS_EDUCATION_WEIGHT", def.EducationWeight)
		v.SetDefault("ANALYSIS_PREFERRED_SKILL_RATIO", def.PreferredSkillRatio)
		v.SetDefault("ANALYSIS_FUZZY_THRESHOLD", def.FuzzyThreshold)
		v.SetDefault("ANALYSIS_TOP_KEYWORDS", def.TopKeywords)
		v.SetDefault("ANALYSIS_MAX_SKILLS_COMPARED", def.MaxSkillsCompared)
		v.SetDefault("ANALYSIS_LOW_KEYWORD_COVERAGE", def.LowKeywordCoverage)
		v.SetDefault("ANALYSIS_LOW_EXPERIENCE_SCORE", def.LowExperienceScore)
		v.SetDefault("ANALYSIS_TIMEOUT", "30s")

		analysisConfig = &AnalysisConfig{
			Engine: engine.Config{
				SkillsWeight:        v.GetFloat64("ANALYSIS_SKILLS_WEIGHT"),
				KeywordsWeight:      v.GetFloat64("ANALYSIS_KEYWORDS_WEIGHT"),
				ExperienceWeight:    v.GetFloat64("ANALYSIS_EXPERIENCE_WEIGHT"),
				EducationWeight:     v.GetFloat64("ANALYSIS_EDUCATION_WEIGHT"),
				PreferredSkillRatio: v.GetFloat64("ANALYSIS_PREFERRED_SKILL_RATIO"),
				FuzzyThreshold:      v.GetFloat64("ANALYSIS_FUZZY_THRESHOLD"),
				TopKeywords:         v.GetInt("ANALYSIS_TOP_KEYWORDS"),
				MaxSkillsCompared:   v.GetInt("ANALYSIS_MAX_SKILLS_COMPARED"),
				LowKeywordCoverage:  v.GetFloat64("ANALYSIS_LOW_KEYWORD_COVERAGE"),
				LowExperienceScore:  v.GetFloat64("ANALYSIS_LOW_EXPERIENCE_SCORE"),
			},
			Timeout: v.GetDuration("ANALYSIS_TIMEOUT"),
		}
	})
	return analysisConfig
}
