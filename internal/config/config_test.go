package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/meditrack")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("Port = %q, want 8000", cfg.Port)
	}
	if !cfg.IsDev() {
		t.Error("expected development env by default")
	}
	if cfg.DBMaxConns != 20 {
		t.Errorf("DBMaxConns = %d, want 20", cfg.DBMaxConns)
	}
	if cfg.ReminderGraceMinutes != 60 {
		t.Errorf("ReminderGraceMinutes = %d, want 60", cfg.ReminderGraceMinutes)
	}
	if cfg.PushTimeout() != 10*time.Second {
		t.Errorf("PushTimeout = %v, want 10s", cfg.PushTimeout())
	}
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when DATABASE_URL is unset")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/meditrack")
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("AUTH_SECRET", "s3cret")
	t.Setenv("PUSH_URL", "https://push.example.com/send")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.IsDev() {
		t.Error("did not expect development env")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestValidate_ProductionRequiresSecret(t *testing.T) {
	cfg := &Config{
		Env:                  "production",
		ReminderGraceMinutes: 60,
		PushTimeoutSeconds:   10,
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing AUTH_SECRET in production")
	}
}

func TestValidate_RejectsNonPositiveGrace(t *testing.T) {
	cfg := &Config{
		Env:                  "development",
		ReminderGraceMinutes: 0,
		PushTimeoutSeconds:   10,
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero REMINDER_GRACE_MINUTES")
	}
}
