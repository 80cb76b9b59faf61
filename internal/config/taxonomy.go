package config

import (
	"sync"

	"github.com/spf13/viper"
)

// TaxonomyConfig selects the skill dictionary source. URL wins over Path;
// with neither set the embedded default dictionary is used.
type TaxonomyConfig struct {
	Path string
	URL  string
}

var (
	taxonomyConfig *TaxonomyConfig
	taxonomyOnce   sync.Once
)

func LoadTaxonomyConfig() *TaxonomyConfig {
	taxonomyOnce.Do(func() {
		v := viper.New()
		v.AutomaticEnv()

		taxonomyConfig = &TaxonomyConfig{
			Path: v.GetString("TAXONOMY_PATH"),
			URL:  v.GetString("TAXONOMY_URL"),
		}
	})
	return taxonomyConfig
}
