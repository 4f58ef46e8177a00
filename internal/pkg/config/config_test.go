package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" || cfg.OrgEmailDomain != "zebrands.com" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.StoreDriver != StoreMongo || cfg.TokenBackend != TokensRedis || cfg.Notify.Driver != NotifyLog {
		t.Fatalf("unexpected driver defaults: %+v", cfg)
	}
	if cfg.JWT.TTL != 24*time.Hour || cfg.Notify.Timeout != 5*time.Second {
		t.Fatalf("unexpected durations: ttl=%s timeout=%s", cfg.JWT.TTL, cfg.Notify.Timeout)
	}
	if cfg.IsProduction() {
		t.Fatal("default env must not be production")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV":            "production",
		"STORE_DRIVER":   "memory",
		"TOKEN_BACKEND":  "jwt",
		"JWT_SECRET":     "s3cret",
		"TOKEN_TTL":      "1h",
		"NOTIFY_DRIVER":  "slack",
		"SLACK_WEBHOOK":  "https://hooks.slack.test/x",
		"ADMIN_EMAIL":    "admin@zebrands.com",
		"ADMIN_PASSWORD": "changeme",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if !cfg.IsProduction() || cfg.StoreDriver != StoreMemory || cfg.JWT.TTL != time.Hour {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Admin.Name != "Administrator" {
		t.Fatalf("expected default admin name, got %q", cfg.Admin.Name)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown store":        {"STORE_DRIVER": "postgres"},
		"jwt without secret":   {"TOKEN_BACKEND": "jwt"},
		"slack without hook":   {"NOTIFY_DRIVER": "slack"},
		"unknown notifier":     {"NOTIFY_DRIVER": "email"},
		"admin without secret": {"ADMIN_EMAIL": "admin@zebrands.com"},
		"bad duration":         {"TOKEN_TTL": "forever"},
		"memory with redis":    {"STORE_DRIVER": "memory"},
	}
	for name, env := range cases {
		if _, err := load(context.Background(), envconfig.MapLookuper(env)); err == nil {
			t.Fatalf("%s: expected error", name)
		} else if !strings.HasPrefix(err.Error(), "config:") {
			t.Fatalf("%s: expected config error prefix, got %v", name, err)
		}
	}
}
