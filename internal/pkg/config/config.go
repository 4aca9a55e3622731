package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds every runtime setting. Values come from the environment (and the
// .env file loaded by godotenv in main).
type Config struct {
	Port               int
	DBPath             string
	Timezone           string
	ChannelSecret      string
	ChannelAccessToken string
	NotifyUserID       string
	AppBaseURL         string
	LogLevel           string
	LogFormat          string
	SQLLogLevel        string
}

// Load reads the configuration from the environment and applies defaults.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Port:               v.GetInt("PORT"),
		DBPath:             v.GetString("HEALTHLOG_DB_PATH"),
		Timezone:           v.GetString("TIMEZONE"),
		ChannelSecret:      v.GetString("CHANNEL_SECRET"),
		ChannelAccessToken: v.GetString("CHANNEL_ACCESS_TOKEN"),
		NotifyUserID:       v.GetString("NOTIFY_USER_ID"),
		AppBaseURL:         v.GetString("APP_BASE_URL"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		LogFormat:          v.GetString("LOG_FORMAT"),
		SQLLogLevel:        v.GetString("SQL_LOG_LEVEL"),
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid PORT %d", cfg.Port)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", 8080)
	v.SetDefault("HEALTHLOG_DB_PATH", "healthlog.db")
	v.SetDefault("TIMEZONE", "Local")
	v.SetDefault("APP_BASE_URL", "http://localhost:8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("SQL_LOG_LEVEL", "warn")
}

// Location resolves the configured timezone used for "today" boundaries.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// LineEnabled reports whether LINE push credentials are configured.
func (c *Config) LineEnabled() bool {
	return c.ChannelSecret != "" && c.ChannelAccessToken != "" && c.NotifyUserID != ""
}
