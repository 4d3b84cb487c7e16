// Package config holds the tunables of the context core and their
// validation. The three runtime tunables — budget, module cap, window
// size — are the only knobs the core exposes; everything else is a
// path to startup inputs.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults, matching the behavior of the original agent: up to three
// context sections per query and the fifteen most recent chat items.
const (
	DefaultMaxBudget     = 6000
	DefaultMaxModules    = 3
	DefaultWindowMaxSize = 15

	DefaultKnowledgeDir = "knowledge_base/modules"
	DefaultCatalogDir   = "knowledge_base/catalogs"
)

// Config is the full configuration of the process.
type Config struct {
	// MaxBudget is the maximum total size estimate of one assembled
	// instruction, in size-estimate units (approximate tokens).
	MaxBudget int `yaml:"max_budget"`

	// MaxModules caps how many keyword-matched modules are added on
	// top of the always-present core module.
	MaxModules int `yaml:"max_modules"`

	// WindowMaxSize bounds the per-session conversation transcript.
	WindowMaxSize int `yaml:"window_max_size"`

	// KnowledgeDir holds the knowledge module JSON files.
	KnowledgeDir string `yaml:"knowledge_dir"`

	// CatalogDir holds the entity catalog JSON files.
	CatalogDir string `yaml:"catalog_dir"`
}

// Error reports an invalid configuration value. Fatal at startup.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// Default returns the documented default configuration.
func Default() Config {
	return Config{
		MaxBudget:     DefaultMaxBudget,
		MaxModules:    DefaultMaxModules,
		WindowMaxSize: DefaultWindowMaxSize,
		KnowledgeDir:  DefaultKnowledgeDir,
		CatalogDir:    DefaultCatalogDir,
	}
}

// Load reads a YAML configuration file on top of the defaults.
// Environment references in the file are expanded, and unknown fields
// are rejected. An empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	data = []byte(os.ExpandEnv(string(data)))

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate checks the tunables. Non-positive values are configuration
// errors; there is no degraded startup mode.
func (c Config) Validate() error {
	if c.MaxBudget <= 0 {
		return &Error{Field: "max_budget", Reason: "must be a positive integer"}
	}
	if c.MaxModules <= 0 {
		return &Error{Field: "max_modules", Reason: "must be a positive integer"}
	}
	if c.WindowMaxSize <= 0 {
		return &Error{Field: "window_max_size", Reason: "must be a positive integer"}
	}
	if c.KnowledgeDir == "" {
		return &Error{Field: "knowledge_dir", Reason: "must not be empty"}
	}
	if c.CatalogDir == "" {
		return &Error{Field: "catalog_dir", Reason: "must not be empty"}
	}
	return nil
}
