package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Client.APIBaseURL != "http://localhost:8000/api/super_admin/" {
		t.Fatalf("api url = %q", cfg.Client.APIBaseURL)
	}
	if cfg.Client.Timeout != 30*time.Second || cfg.Client.Profile != "default" {
		t.Fatalf("client = %+v", cfg.Client)
	}
	if cfg.Server.Store != StoreMemory || cfg.Server.TokenTTL != 24*time.Hour || cfg.Server.Port != "8000" {
		t.Fatalf("server = %+v", cfg.Server)
	}
	if !cfg.Development() {
		t.Fatalf("expected development env")
	}
	if err := cfg.RequireServer(); err == nil {
		t.Fatalf("expected missing JWT_SECRET to be reported")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV":                 "production",
		"ADMIN_API_URL":       "https://admin.example.com/api/super_admin/",
		"ADMIN_API_TIMEOUT":   "5s",
		"ADMIN_SERVER_PAGING": "true",
		"STORE":               "mongo",
		"JWT_SECRET":          "s3cret",
		"REDIS_DB":            "2",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Client.Timeout != 5*time.Second || !cfg.Client.ServerPaging {
		t.Fatalf("client = %+v", cfg.Client)
	}
	if cfg.Server.Store != StoreMongo || cfg.Redis.DB != 2 {
		t.Fatalf("server = %+v redis = %+v", cfg.Server, cfg.Redis)
	}
	if cfg.Development() {
		t.Fatalf("expected production env")
	}
	if err := cfg.RequireServer(); err != nil {
		t.Fatalf("require server: %v", err)
	}
}

func TestLoad_Rejects(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown store":  {"STORE": "sqlite"},
		"zero timeout":   {"ADMIN_API_TIMEOUT": "0s"},
		"bad duration":   {"TOKEN_TTL": "forever"},
		"non-numeric db": {"REDIS_DB": "one"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := load(context.Background(), envconfig.MapLookuper(env)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
