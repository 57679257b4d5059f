package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "5175" || cfg.WordLength != 5 || cfg.MaxAttempts != 6 {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
	want := time.Date(2022, time.February, 14, 0, 0, 0, 0, time.UTC)
	if !cfg.Epoch.Equal(want) {
		t.Errorf("Expected epoch %v, got %v", want, cfg.Epoch)
	}
	if cfg.StepSize != 1 || cfg.DatabasePath != "" {
		t.Errorf("Unexpected daily/db defaults: %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DAILY_STEP_SIZE", "13")
	t.Setenv("DAILY_EPOCH", "2024-01-01T00:00:00Z")
	t.Setenv("PLAYER_TTL", "1h")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.StepSize != 13 || cfg.Epoch.Year() != 2024 || cfg.PlayerTTL != time.Hour {
		t.Errorf("Overrides not applied: %+v", cfg)
	}
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("MAX_ATTEMPTS", "six")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestLoadRejectsZeroStride(t *testing.T) {
	t.Setenv("DAILY_STEP_SIZE", "0")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero stride")
	}
}

func TestLoadRejectsNonPositiveRateLimit(t *testing.T) {
	for _, kv := range [][2]string{{"RATE_LIMIT_RPS", "0"}, {"RATE_LIMIT_BURST", "0"}, {"RATE_LIMIT_RPS", "-1"}} {
		t.Run(kv[0]+"="+kv[1], func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			if _, err := Load(); err == nil || !strings.Contains(err.Error(), "RATE_LIMIT") {
				t.Errorf("Expected rate limit error, got %v", err)
			}
		})
	}
}
