package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("LoadWith: %v", err)
	}

	if cfg.Server.GetServerAddr() != "0.0.0.0:8080" {
		t.Errorf("Expected default server addr, got %s", cfg.Server.GetServerAddr())
	}
	if cfg.Database.Driver != DriverPostgres {
		t.Errorf("Expected postgres driver by default, got %s", cfg.Database.Driver)
	}
	if cfg.Review.BatchDeleteLimit != 20 {
		t.Errorf("Expected batch delete limit 20, got %d", cfg.Review.BatchDeleteLimit)
	}
	if !cfg.Review.AutoPublish {
		t.Error("Expected auto publish on approve by default")
	}
	if cfg.Git.PushTimeout != 30*time.Second {
		t.Errorf("Expected 30s push timeout, got %s", cfg.Git.PushTimeout)
	}
	if cfg.S3.Enabled() {
		t.Error("Expected S3 mirror disabled without a bucket")
	}
	if !cfg.App.IsDevelopment() {
		t.Error("Expected development environment by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"DB_DRIVER":                 "sqlite",
		"DB_PATH":                   "/tmp/codes.db",
		"EXPORT_PATH":               "/srv/export/GameCodeBase.json",
		"GIT_ENABLED":               "true",
		"GIT_PUSH_TIMEOUT":          "5s",
		"S3_BUCKET":                 "codes",
		"REVIEW_BATCH_DELETE_LIMIT": "5",
	}))
	if err != nil {
		t.Fatalf("LoadWith: %v", err)
	}

	if cfg.Database.GetDatabaseURL() != "/tmp/codes.db" {
		t.Errorf("Expected sqlite path as DSN, got %s", cfg.Database.GetDatabaseURL())
	}
	if !cfg.Git.Enabled || cfg.Git.PushTimeout != 5*time.Second {
		t.Errorf("Unexpected git config: %+v", cfg.Git)
	}
	if !cfg.S3.Enabled() {
		t.Error("Expected S3 mirror enabled")
	}
	if cfg.Review.BatchDeleteLimit != 5 {
		t.Errorf("Expected batch delete limit 5, got %d", cfg.Review.BatchDeleteLimit)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"DB_DRIVER": "mysql"}},
		{"zero delete limit", map[string]string{"REVIEW_BATCH_DELETE_LIMIT": "0"}},
		{"zero failure threshold", map[string]string{"REVIEW_INVALID_AFTER_FAILURES": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadWith(context.Background(), envconfig.MapLookuper(tt.env)); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}
