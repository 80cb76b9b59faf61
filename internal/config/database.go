package config

import (
	"sync"

	"github.com/spf13/viper"
)

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	TimeZone string
}

var (
	dbConfig *DBConfig
	dbOnce   sync.Once
)

func LoadDBConfig() *DBConfig {
	dbOnce.Do(func() {
		v := viper.New()
		v.AutomaticEnv()
		v.SetDefault("DB_HOST", "localhost")
		v.SetDefault("DB_PORT", "5432")
		v.SetDefault("DB_USER", "postgres")
		v.SetDefault("DB_NAME", "resumatch")
		v.SetDefault("DB_SSLMODE", "disable")
		v.SetDefault("DB_TIMEZONE", "UTC")

		dbConfig = &DBConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			TimeZone: v.GetString("DB_TIMEZONE"),
		}
	})
	return dbConfig
}
