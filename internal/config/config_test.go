package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	if cfg.Server.Port != "8737" {
		t.Errorf("expected default port 8737, got %q", cfg.Server.Port)
	}
	if cfg.Providers.OpenMeteoURL != "https://api.open-meteo.com/v1" {
		t.Errorf("unexpected open-meteo url: %q", cfg.Providers.OpenMeteoURL)
	}
	if cfg.Photos.Width != 1920 || cfg.Photos.Height != 1080 {
		t.Errorf("unexpected photo dimensions: %dx%d", cfg.Photos.Width, cfg.Photos.Height)
	}
	if cfg.Retry.MaxRetries != 3 {
		t.Errorf("expected 3 retries, got %d", cfg.Retry.MaxRetries)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("IDLEVIEW_PORT", "9000")
	t.Setenv("IDLEVIEW_READ_TIMEOUT", "5s")
	t.Setenv("IDLEVIEW_SETTINGS_PATH", "/tmp/idleview/settings.json")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	if cfg.Server.Port != "9000" {
		t.Errorf("expected port override, got %q", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("expected 5s read timeout, got %v", cfg.Server.ReadTimeout)
	}
	if cfg.Settings.Path != "/tmp/idleview/settings.json" {
		t.Errorf("expected settings path override, got %q", cfg.Settings.Path)
	}
}

func TestParseHelpersToleratesGarbage(t *testing.T) {
	if parseDuration("soon") != 0 {
		t.Error("bad duration should parse to zero")
	}
	if parseInt("many") != 0 {
		t.Error("bad int should parse to zero")
	}
	if parseFloat("few") != 0 {
		t.Error("bad float should parse to zero")
	}
}
