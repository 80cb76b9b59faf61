package config

import (
	"sync"

	"github.com/spf13/viper"
)

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
	JSON  bool
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		v := viper.New()
		v.AutomaticEnv()
		v.SetDefault("APP_NAME", "resumatch")
		v.SetDefault("APP_ENV", "development")
		v.SetDefault("APP_PORT", ":8080")
		v.SetDefault("APP_DEBUG", false)
		v.SetDefault("LOG_JSON", false)

		appConfig = &AppConfig{
			Name:  v.GetString("APP_NAME"),
			Env:   v.GetString("APP_ENV"),
			Port:  v.GetString("APP_PORT"),
			Debug: v.GetBool("APP_DEBUG"),
			JSON:  v.GetBool("LOG_JSON"),
		}
	})
	return appConfig
}
