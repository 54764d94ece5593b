package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	db := cfg.Database
	if db.Host != "localhost" || db.Port != 5432 {
		t.Errorf("defaults = %s:%d, want localhost:5432", db.Host, db.Port)
	}
	if db.User != "collectdesk" || db.Database != "collectdesk" {
		t.Errorf("defaults user/db = %s/%s, want collectdesk/collectdesk", db.User, db.Database)
	}
	if db.SSLMode != "disable" {
		t.Errorf("default sslmode = %q, want disable", db.SSLMode)
	}
	if db.MinConns != 1 || db.MaxConns != 10 {
		t.Errorf("default pool bounds = %d..%d, want 1..10", db.MinConns, db.MaxConns)
	}
	if db.Password != "" {
		t.Errorf("default password = %q, want empty (keyring lookup)", db.Password)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`database:
  host: db.internal
  port: 5433
  user: alice
  database: collections
  max_conns: 4
`)
	if err := os.WriteFile(filepath.Join(dir, "collectdesk.yaml"), content, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	db := cfg.Database
	if db.Host != "db.internal" || db.Port != 5433 {
		t.Errorf("loaded = %s:%d, want db.internal:5433", db.Host, db.Port)
	}
	if db.User != "alice" || db.Database != "collections" {
		t.Errorf("loaded user/db = %s/%s, want alice/collections", db.User, db.Database)
	}
	if db.MaxConns != 4 {
		t.Errorf("loaded max_conns = %d, want 4", db.MaxConns)
	}
	// Keys absent from the file keep their defaults.
	if db.SSLMode != "disable" || db.MinConns != 1 {
		t.Errorf("fallback sslmode/min_conns = %s/%d, want disable/1", db.SSLMode, db.MinConns)
	}
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Setenv("COLLECTDESK_DATABASE_HOST", "env.example")
	t.Setenv("COLLECTDESK_DATABASE_PORT", "6543")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.Host != "env.example" {
		t.Errorf("host = %q, want env override", cfg.Database.Host)
	}
	if cfg.Database.Port != 6543 {
		t.Errorf("port = %d, want env override 6543", cfg.Database.Port)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "collectdesk.yaml"), []byte("database: ["), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(dir); err == nil {
		t.Fatal("Load() error = nil, want parse failure")
	}
}

func TestDSN(t *testing.T) {
	db := Database{
		Host: "localhost", Port: 5432,
		User: "alice", Password: "secret",
		Database: "collections", SSLMode: "disable",
	}
	want := "host=localhost port=5432 user=alice password=secret dbname=collections sslmode=disable"
	if got := db.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
