package core

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.BaseURL != DefaultBaseURL {
		t.Fatalf("unexpected base url %q", cfg.BaseURL)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Fatalf("unexpected request timeout %v", cfg.RequestTimeout)
	}
	if cfg.Retry.MaxAttempts != 3 || cfg.Retry.DefaultDelay != 60*time.Second {
		t.Fatalf("unexpected retry defaults %+v", cfg.Retry)
	}
}

func TestConfig_ValidateRequiresCredentials(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ClientID = "client-id"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected an error for a missing secret")
	}
	if !strings.Contains(err.Error(), "missing authorization") {
		t.Fatalf("unexpected error message: %v", err)
	}

	cfg.ClientSecret = "client-secret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("complete config should validate: %v", err)
	}
}

func TestConfig_NormalizeFillsDefaultsAndTrims(t *testing.T) {
	cfg := Config{
		ClientID:     "  client-id  ",
		ClientSecret: "client-secret",
		BaseURL:      "https://api.example.test/",
	}
	cfg = cfg.Normalize()
	if cfg.ClientID != "client-id" {
		t.Fatalf("expected trimmed client id, got %q", cfg.ClientID)
	}
	if cfg.BaseURL != "https://api.example.test" {
		t.Fatalf("expected trailing slash stripped, got %q", cfg.BaseURL)
	}
	if cfg.RequestTimeout != 30*time.Second || cfg.Retry.MaxAttempts != 3 {
		t.Fatalf("expected defaults filled, got %+v", cfg)
	}

	empty := Config{}.Normalize()
	if empty.BaseURL != DefaultBaseURL {
		t.Fatalf("expected default base url, got %q", empty.BaseURL)
	}
}
