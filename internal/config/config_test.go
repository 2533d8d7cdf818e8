package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"fieldops/internal/config"
)

func TestDefaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Listen != ":9000" || cfg.DataDir != "data" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fieldops.yaml")
	body := "listen: \":8080\"\ndata_dir: /var/lib/fieldops\nsite_name: Plant North\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Listen != ":8080" || cfg.DataDir != "/var/lib/fieldops" || cfg.SiteName != "Plant North" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	// Unset keys keep their defaults.
	if cfg.DocsDir != "docs" {
		t.Errorf("docs_dir = %q, want default", cfg.DocsDir)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config path")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FIELDOPS_DATA_DIR", "/tmp/override")
	t.Setenv("FIELDOPS_SITE_NAME", "Plant South")

	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataDir != "/tmp/override" || cfg.SiteName != "Plant South" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}
