package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port                string   `mapstructure:"PORT"`
	Env                 string   `mapstructure:"ENV"`
	DatabaseURL         string   `mapstructure:"DATABASE_URL"`
	DBMaxConns          int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns          int32    `mapstructure:"DB_MIN_CONNS"`
	PushURL             string   `mapstructure:"PUSH_URL"`
	PushTimeoutSeconds  int      `mapstructure:"PUSH_TIMEOUT_SECONDS"`
	MailURL             string   `mapstructure:"MAIL_URL"`
	AuthSecret          string   `mapstructure:"AUTH_SECRET"`
	CORSOrigins         []string `mapstructure:"CORS_ORIGINS"`
	ReminderGraceMinutes int     `mapstructure:"REMINDER_GRACE_MINUTES"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("PUSH_TIMEOUT_SECONDS", 10)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("REMINDER_GRACE_MINUTES", 60)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("PUSH_URL")
	v.BindEnv("PUSH_TIMEOUT_SECONDS")
	v.BindEnv("MAIL_URL")
	v.BindEnv("AUTH_SECRET")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("REMINDER_GRACE_MINUTES")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// PushTimeout returns the outbound notification timeout as a duration.
func (c *Config) PushTimeout() time.Duration {
	return time.Duration(c.PushTimeoutSeconds) * time.Second
}

// Validate checks that the configuration is safe to run. Outside development
// the auth secret and the push endpoint must be configured.
func (c *Config) Validate() error {
	if c.ReminderGraceMinutes <= 0 {
		return fmt.Errorf("REMINDER_GRACE_MINUTES must be positive, got %d", c.ReminderGraceMinutes)
	}
	if c.PushTimeoutSeconds <= 0 {
		return fmt.Errorf("PUSH_TIMEOUT_SECONDS must be positive, got %d", c.PushTimeoutSeconds)
	}
	if c.IsDev() {
		return nil
	}
	if c.AuthSecret == "" {
		return fmt.Errorf("AUTH_SECRET is required outside development")
	}
	if c.PushURL == "" {
		return fmt.Errorf("PUSH_URL is required outside development")
	}
	return nil
}
