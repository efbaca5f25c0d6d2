// Package config loads the service configuration from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values for the service.
type Config struct {
	Port     int    `mapstructure:"PORT"`
	DBPath   string `mapstructure:"DB_PATH"`
	LogLevel string `mapstructure:"LOG_LEVEL"`
	Timezone string `mapstructure:"TIMEZONE"`

	NotificationsEnabled bool   `mapstructure:"NOTIFICATIONS_ENABLED"`
	NotificationChannel  string `mapstructure:"NOTIFICATION_CHANNEL"`

	// LINE delivery; all three must be set together.
	LineChannelSecret string `mapstructure:"LINE_CHANNEL_SECRET"`
	LineChannelToken  string `mapstructure:"LINE_CHANNEL_ACCESS_TOKEN"`
	LineRecipientID   string `mapstructure:"LINE_RECIPIENT_ID"`
}

var keys = []string{
	"PORT", "DB_PATH", "LOG_LEVEL", "TIMEZONE",
	"NOTIFICATIONS_ENABLED", "NOTIFICATION_CHANNEL",
	"LINE_CHANNEL_SECRET", "LINE_CHANNEL_ACCESS_TOKEN", "LINE_RECIPIENT_ID",
}

// Load reads .env (if present) into the process environment, then builds
// the Config from environment variables and defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", 8080)
	v.SetDefault("DB_PATH", "petagenda.db")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("TIMEZONE", "Local")
	v.SetDefault("NOTIFICATIONS_ENABLED", true)
	v.SetDefault("NOTIFICATION_CHANNEL", "Pet Agenda")

	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("bind %s: %w", k, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and the all-or-nothing LINE settings.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH must not be empty")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	set := 0
	for _, s := range []string{c.LineChannelSecret, c.LineChannelToken, c.LineRecipientID} {
		if s != "" {
			set++
		}
	}
	if set != 0 && set != 3 {
		return fmt.Errorf("LINE_CHANNEL_SECRET, LINE_CHANNEL_ACCESS_TOKEN and LINE_RECIPIENT_ID must be set together")
	}
	return nil
}

// LineEnabled reports whether notifications are delivered through LINE.
func (c *Config) LineEnabled() bool {
	return c.LineChannelSecret != "" && c.LineChannelToken != "" && c.LineRecipientID != ""
}

// Location resolves TIMEZONE; trigger times are local to it.
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
