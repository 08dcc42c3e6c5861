package core

import (
	"context"
	"testing"
	"time"
)

func TestEnvRawConfigLoader_ReadsPrefixedVariables(t *testing.T) {
	t.Setenv("OPENFINANCE_CLIENT_ID", "env-client")
	t.Setenv("OPENFINANCE_CLIENT_SECRET", "env-secret")
	t.Setenv("OPENFINANCE_BASE_URL", "https://env.example.test")

	raw, err := EnvRawConfigLoader{}.LoadRaw(context.Background())
	if err != nil {
		t.Fatalf("load raw: %v", err)
	}
	if raw["client_id"] != "env-client" || raw["client_secret"] != "env-secret" {
		t.Fatalf("unexpected credentials: %v", raw)
	}
	if raw["base_url"] != "https://env.example.test" {
		t.Fatalf("unexpected base url: %v", raw["base_url"])
	}
}

func TestEnvRawConfigLoader_SkipsUnsetVariables(t *testing.T) {
	t.Setenv("ACME_CLIENT_ID", "acme-client")

	raw, err := EnvRawConfigLoader{Prefix: "ACME"}.LoadRaw(context.Background())
	if err != nil {
		t.Fatalf("load raw: %v", err)
	}
	if raw["client_id"] != "acme-client" {
		t.Fatalf("expected prefixed client id, got %v", raw)
	}
	if _, present := raw["client_secret"]; present {
		t.Fatal("unset variables must not appear in the raw map")
	}
}

func TestGoOptionsResolver_RuntimeWinsOverLoaded(t *testing.T) {
	defaults := DefaultConfig()
	loaded := Config{
		ClientID:     "loaded-client",
		ClientSecret: "loaded-secret",
		BaseURL:      "https://loaded.example.test",
	}
	runtime := Config{
		ClientID:     "runtime-client",
		ClientSecret: "runtime-secret",
	}

	resolved, err := GoOptionsResolver{}.Resolve(defaults, loaded, runtime)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.ClientID != "runtime-client" || resolved.ClientSecret != "runtime-secret" {
		t.Fatalf("runtime layer must win, got %+v", resolved)
	}
	if resolved.BaseURL != "https://loaded.example.test" {
		t.Fatalf("loaded base url must survive, got %q", resolved.BaseURL)
	}
	if resolved.RequestTimeout != 30*time.Second {
		t.Fatalf("defaults must fill the gaps, got %v", resolved.RequestTimeout)
	}
}

func TestGoOptionsResolver_MissingCredentialsFail(t *testing.T) {
	defaults := DefaultConfig()
	if _, err := (GoOptionsResolver{}).Resolve(defaults, Config{}, Config{}); err == nil {
		t.Fatal("expected a validation error for missing credentials")
	}
}
