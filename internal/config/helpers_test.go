package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/indaco/bv/internal/semver"
)

/* ------------------------------------------------------------------------- */
/* HELPERS                                                                   */
/* ------------------------------------------------------------------------- */

// runInTempDir runs a function in a temporary directory, then restores to a safe directory.
// This handles the case where the CWD has been deleted by previous test cleanup.
func runInTempDir(t *testing.T, tmpPath string, fn func()) {
	t.Helper()

	origDir, err := os.Getwd()
	if err != nil {
		origDir = os.TempDir()
		if chErr := os.Chdir(origDir); chErr != nil {
			t.Fatalf("failed to chdir to temp dir: %v", chErr)
		}
	}

	targetDir := filepath.Dir(tmpPath)
	if err := os.Chdir(targetDir); err != nil {
		t.Fatalf("failed to chdir to %s: %v", targetDir, err)
	}
	defer func() { _ = os.Chdir(origDir) }()
	fn()
}

func checkError(t *testing.T, err error, wantErr bool) {
	t.Helper()
	if (err != nil) != wantErr {
		t.Fatalf("expected err=%v, got err=%v", wantErr, err)
	}
}

func semVer(t *testing.T, s string) VersionSpec {
	t.Helper()
	v, err := semver.ParseVersion(s)
	if err != nil {
		t.Fatalf("ParseVersion(%q): %v", s, err)
	}
	return Semantic(v)
}

// sampleConfig returns a two-module store covering every persisted field.
func sampleConfig(t *testing.T) *Config {
	t.Helper()
	return &Config{Modules: &[]ModuleConfig{
		{
			Name: "app",
			Files: []ModuleFile{
				{Path: "VERSION", Version: semVer(t, "1.2.3")},
				{
					Path:           "main.go",
					SearchPattern:  `Version = "{current_version}"`,
					ReplacePattern: `Version = "{new_version}"`,
					Version:        semVer(t, "1.2.3"),
				},
				{Path: "package.json", Format: "json", Field: "version", Version: semVer(t, "1.2.3-rc.1+build.5")},
			},
		},
		{Name: "legacy", CurrentVersion: "0.9.0"},
	}}
}
