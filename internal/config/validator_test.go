package config

import (
	"context"
	"strings"
	"testing"

	"github.com/indaco/bv/internal/core"
)

func TestValidator_Validate(t *testing.T) {
	tests := []struct {
		name         string
		cfg          *Config
		files        map[string]string
		wantErrors   int
		wantWarnings int
		wantMessage  string
	}{
		{
			name:         "no modules",
			cfg:          Default(),
			wantWarnings: 1,
			wantMessage:  "no modules configured",
		},
		{
			name: "healthy store",
			cfg:  sampleConfig(t),
			files: map[string]string{
				"/repo/VERSION":      "1.2.3\n",
				"/repo/main.go":      "const Version = \"1.2.3\"\n",
				"/repo/package.json": `{"version": "1.2.3-rc.1+build.5"}`,
			},
			// legacy module tracks no files
			wantWarnings: 1,
		},
		{
			name: "structured file drifted",
			cfg: &Config{Modules: &[]ModuleConfig{
				{Name: "a", Files: []ModuleFile{{Path: "package.json", Format: "json", Field: "version", Version: semVer(t, "1.0.0")}}},
			}},
			files:       map[string]string{"/repo/package.json": `{"version": "1.1.0"}`},
			wantErrors:  1,
			wantMessage: "has version 1.1.0, expected 1.0.0",
		},
		{
			name: "file shared between modules",
			cfg: &Config{Modules: &[]ModuleConfig{
				{Name: "a", Files: []ModuleFile{{Path: "VERSION", Version: semVer(t, "1.0.0")}}},
				{Name: "b", Files: []ModuleFile{{Path: "VERSION", Version: semVer(t, "1.0.0")}}},
			}},
			files:       map[string]string{"/repo/VERSION": "1.0.0\n"},
			wantErrors:  1,
			wantMessage: "VERSION is tracked by both a and b",
		},
		{
			name: "regex file drifted",
			cfg: &Config{Modules: &[]ModuleConfig{
				{Name: "a", Files: []ModuleFile{{Path: "main.go", Format: "regex", Pattern: `Version = "([^"]+)"`, Version: semVer(t, "1.0.0")}}},
			}},
			files:       map[string]string{"/repo/main.go": "const Version = \"1.0.1\"\n"},
			wantErrors:  1,
			wantMessage: "has version 1.0.1, expected 1.0.0",
		},
		{
			name: "pattern no longer matches",
			cfg: &Config{Modules: &[]ModuleConfig{
				{Name: "a", Files: []ModuleFile{{Path: "README.md", Version: semVer(t, "1.0.0")}}},
			}},
			files:       map[string]string{"/repo/README.md": "install v2.0.0\n"},
			wantErrors:  1,
			wantMessage: "does not contain version 1.0.0",
		},
		{
			name: "duplicate and unnamed modules",
			cfg: &Config{Modules: &[]ModuleConfig{
				{Name: "a", CurrentVersion: "1.0.0"},
				{Name: "a", CurrentVersion: "1.0.0"},
				{CurrentVersion: "1.0.0"},
			}},
			wantErrors:   1,
			wantWarnings: 4,
			wantMessage:  `duplicate module name "a"`,
		},
		{
			name: "missing file on disk",
			cfg: &Config{Modules: &[]ModuleConfig{
				{Name: "a", Files: []ModuleFile{{Path: "VERSION", Version: semVer(t, "1.0.0")}}},
			}},
			wantErrors:  1,
			wantMessage: "VERSION",
		},
		{
			name: "file without version",
			cfg: &Config{Modules: &[]ModuleConfig{
				{Name: "a", Files: []ModuleFile{{Path: "VERSION"}}},
			}},
			files:       map[string]string{"/repo/VERSION": "1.0.0"},
			wantErrors:  1,
			wantMessage: "has no version",
		},
		{
			name: "invalid search pattern",
			cfg: &Config{Modules: &[]ModuleConfig{
				{Name: "a", Files: []ModuleFile{{Path: "x.go", SearchPattern: "([", ReplacePattern: "x", Version: semVer(t, "1.0.0")}}},
			}},
			files:       map[string]string{"/repo/x.go": "1.0.0"},
			wantErrors:  1,
			wantMessage: "invalid search pattern",
		},
		{
			name: "malformed legacy version",
			cfg: &Config{Modules: &[]ModuleConfig{
				{Name: "a", CurrentVersion: "v1"},
			}},
			wantErrors:   1,
			wantWarnings: 1,
			wantMessage:  "current_version",
		},
		{
			name: "unpaired patterns",
			cfg: &Config{Modules: &[]ModuleConfig{
				{Name: "a", Files: []ModuleFile{{Path: "x.go", SearchPattern: "x", Version: semVer(t, "1.0.0")}}},
			}},
			wantErrors:  1,
			wantMessage: ErrUnpairedPatterns.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := core.NewMockFileSystem()
			for path, content := range tt.files {
				fs.SetFile(path, []byte(content))
			}

			results, err := NewValidator(fs, tt.cfg, "/repo").Validate(context.Background())
			checkError(t, err, false)

			if got := ErrorCount(results); got != tt.wantErrors {
				t.Errorf("ErrorCount() = %d, want %d: %+v", got, tt.wantErrors, results)
			}
			if got := WarningCount(results); got != tt.wantWarnings {
				t.Errorf("WarningCount() = %d, want %d: %+v", got, tt.wantWarnings, results)
			}
			if HasErrors(results) != (tt.wantErrors > 0) {
				t.Error("HasErrors() disagrees with ErrorCount()")
			}
			if tt.wantMessage != "" && !containsMessage(results, tt.wantMessage) {
				t.Errorf("no result mentions %q: %+v", tt.wantMessage, results)
			}
		})
	}
}

func TestValidator_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewValidator(core.NewMockFileSystem(), sampleConfig(t), "").Validate(ctx); err == nil {
		t.Error("expected context error")
	}
}

func containsMessage(results []ValidationResult, substr string) bool {
	for _, r := range results {
		if strings.Contains(r.Message, substr) {
			return true
		}
	}
	return false
}
