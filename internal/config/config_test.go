package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/convergencelab/sabius/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.MaxBudget != config.DefaultMaxBudget {
		t.Errorf("MaxBudget = %d, want %d", cfg.MaxBudget, config.DefaultMaxBudget)
	}
	if cfg.MaxModules != config.DefaultMaxModules {
		t.Errorf("MaxModules = %d, want %d", cfg.MaxModules, config.DefaultMaxModules)
	}
	if cfg.WindowMaxSize != config.DefaultWindowMaxSize {
		t.Errorf("WindowMaxSize = %d, want %d", cfg.WindowMaxSize, config.DefaultWindowMaxSize)
	}
	if cfg.KnowledgeDir != config.DefaultKnowledgeDir {
		t.Errorf("KnowledgeDir = %q, want %q", cfg.KnowledgeDir, config.DefaultKnowledgeDir)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, "max_budget: 4000\nwindow_max_size: 30\n")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.MaxBudget != 4000 {
		t.Errorf("MaxBudget = %d, want 4000", cfg.MaxBudget)
	}
	if cfg.WindowMaxSize != 30 {
		t.Errorf("WindowMaxSize = %d, want 30", cfg.WindowMaxSize)
	}
	// Untouched fields keep their defaults.
	if cfg.MaxModules != config.DefaultMaxModules {
		t.Errorf("MaxModules = %d, want default %d", cfg.MaxModules, config.DefaultMaxModules)
	}
}

func TestLoad_ExpandsEnvironmentReferences(t *testing.T) {
	t.Setenv("SABIUS_KB_ROOT", "/srv/sabius")
	path := writeConfig(t, "knowledge_dir: ${SABIUS_KB_ROOT}/modules\n")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.KnowledgeDir != "/srv/sabius/modules" {
		t.Errorf("KnowledgeDir = %q, want /srv/sabius/modules", cfg.KnowledgeDir)
	}
}

func TestLoad_RejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "max_budget: 4000\nmax_sections: 5\n")

	if _, err := config.Load(path); err == nil {
		t.Fatal("Load() accepted an unknown field")
	}
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load() succeeded on a missing file")
	}
}

func TestValidate_RejectsNonPositiveTunables(t *testing.T) {
	for _, tc := range []struct {
		name   string
		mutate func(*config.Config)
		field  string
	}{
		{"zero budget", func(c *config.Config) { c.MaxBudget = 0 }, "max_budget"},
		{"negative modules", func(c *config.Config) { c.MaxModules = -1 }, "max_modules"},
		{"zero window", func(c *config.Config) { c.WindowMaxSize = 0 }, "window_max_size"},
		{"empty knowledge dir", func(c *config.Config) { c.KnowledgeDir = "" }, "knowledge_dir"},
		{"empty catalog dir", func(c *config.Config) { c.CatalogDir = "" }, "catalog_dir"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)

			err := cfg.Validate()

			var cfgErr *config.Error
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Validate() error = %v, want *config.Error", err)
			}
			if cfgErr.Field != tc.field {
				t.Errorf("Error.Field = %q, want %q", cfgErr.Field, tc.field)
			}
			if !strings.Contains(cfgErr.Error(), tc.field) {
				t.Errorf("Error() = %q, want the field named", cfgErr.Error())
			}
		})
	}
}
