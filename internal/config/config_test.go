package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 2500 {
		t.Fatalf("port = %d, want 2500", cfg.Port)
	}
	if cfg.Mongo.URI != "mongodb://127.0.0.1:27017" || cfg.Mongo.Database != "lueur" {
		t.Fatalf("unexpected mongo defaults: %+v", cfg.Mongo)
	}
	if cfg.RateLimit.Max != 50 || cfg.RateLimit.WindowMS != 1000 {
		t.Fatalf("unexpected rate limit defaults: %+v", cfg.RateLimit)
	}
	if !cfg.IsDev() {
		t.Fatal("default env must be development")
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	data := []byte(`
port: 8080
env: production
mongo:
  uri: mongodb://db:27017
  database: lueur_prod
admin_ids: [u1, u2]
s3:
  bucket: lueur-assets
  region: eu-west-3
rate_limit:
  max: 10
  window_ms: 500
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 8080 || cfg.IsDev() {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Mongo.Database != "lueur_prod" {
		t.Fatalf("mongo database = %q", cfg.Mongo.Database)
	}
	if len(cfg.AdminIDs) != 2 || cfg.AdminIDs[1] != "u2" {
		t.Fatalf("admin ids = %v", cfg.AdminIDs)
	}
	if cfg.S3Options.Bucket != "lueur-assets" {
		t.Fatalf("s3 bucket = %q", cfg.S3Options.Bucket)
	}
	if cfg.RateLimit.Max != 10 || cfg.RateLimit.WindowMS != 500 {
		t.Fatalf("rate limit = %+v", cfg.RateLimit)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LUEUR_PORT", "9000")
	t.Setenv("LUEUR_ENV", "production")
	t.Setenv("LUEUR_ADMIN_IDS", " u1, u2 ,,u3 ")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 9000 {
		t.Fatalf("port = %d, want 9000", cfg.Port)
	}
	if cfg.IsDev() {
		t.Fatal("env override should win")
	}
	if len(cfg.AdminIDs) != 3 || cfg.AdminIDs[2] != "u3" {
		t.Fatalf("admin ids = %v", cfg.AdminIDs)
	}
}
