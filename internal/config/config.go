// Package config loads the server configuration from an optional YAML
// file, with FIELDOPS_* environment variables taking precedence.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the process configuration.
type Config struct {
	Listen   string `yaml:"listen"`
	DataDir  string `yaml:"data_dir"`
	DocsDir  string `yaml:"docs_dir"`
	AuditDB  string `yaml:"audit_db"`
	SiteName string `yaml:"site_name"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Listen:   ":9000",
		DataDir:  "data",
		DocsDir:  "docs",
		AuditDB:  "fieldops_audit.db",
		SiteName: "Field Operations & HSE",
	}
}

// Load reads the config file at path on top of the defaults, then
// applies environment overrides. An empty path skips the file; a
// missing file at an explicit path is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	for env, dst := range map[string]*string{
		"FIELDOPS_LISTEN":    &c.Listen,
		"FIELDOPS_DATA_DIR":  &c.DataDir,
		"FIELDOPS_DOCS_DIR":  &c.DocsDir,
		"FIELDOPS_AUDIT_DB":  &c.AuditDB,
		"FIELDOPS_SITE_NAME": &c.SiteName,
	} {
		if v := os.Getenv(env); v != "" {
			*dst = v
		}
	}
}
