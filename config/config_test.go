package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.App.Addr() != "0.0.0.0:8080" {
		t.Errorf("addr = %q", cfg.App.Addr())
	}
	if cfg.App.ShutdownTimeout() != 15*time.Second {
		t.Errorf("shutdown timeout = %v", cfg.App.ShutdownTimeout())
	}
	if cfg.Mongo.Database != "inkwell" {
		t.Errorf("database = %q", cfg.Mongo.Database)
	}
	if cfg.Pagination.DefaultPageSize != 10 {
		t.Errorf("page size = %d", cfg.Pagination.DefaultPageSize)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[app]
host = "127.0.0.1"
port = 9000

[mongo]
uri = "mongodb://db:27017"
database = "blog_test"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.App.Addr() != "127.0.0.1:9000" {
		t.Errorf("addr = %q", cfg.App.Addr())
	}
	if cfg.Mongo.Database != "blog_test" {
		t.Errorf("database = %q", cfg.Mongo.Database)
	}
	// untouched sections keep their defaults
	if cfg.Pagination.DefaultPageSize != 10 {
		t.Errorf("page size = %d", cfg.Pagination.DefaultPageSize)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/no/such/config.toml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("INKWELL_MONGO_URI", "mongodb://override:27017")
	t.Setenv("INKWELL_PORT", "3000")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Mongo.URI != "mongodb://override:27017" {
		t.Errorf("uri = %q", cfg.Mongo.URI)
	}
	if cfg.App.Port != 3000 {
		t.Errorf("port = %d", cfg.App.Port)
	}
}
