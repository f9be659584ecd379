package clix

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/indaco/bv/internal/config"
	"github.com/indaco/bv/internal/semver"
)

func TestEnv_Paths(t *testing.T) {
	dir := t.TempDir()
	env := &Env{ConfigFile: filepath.Join(dir, "bv.yml")}

	if env.RootDir() != dir {
		t.Errorf("RootDir() = %q, want %q", env.RootDir(), dir)
	}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"inside root", filepath.Join(dir, "pkg", "package.json"), "pkg/package.json"},
		{"root file", filepath.Join(dir, "VERSION"), "VERSION"},
		{"outside root", filepath.Join(filepath.Dir(dir), "other", "VERSION"), filepath.ToSlash(filepath.Join(filepath.Dir(dir), "other", "VERSION"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := env.StorePath(tt.input); got != tt.want {
				t.Errorf("StorePath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}

	if got := env.Resolve("VERSION"); got != filepath.Join(dir, "VERSION") {
		t.Errorf("Resolve(relative) = %q", got)
	}
	abs := filepath.Join(dir, "x")
	if got := env.Resolve(abs); got != abs {
		t.Errorf("Resolve(absolute) = %q", got)
	}
}

func TestEnv_LoadAndSaveConfig(t *testing.T) {
	dir := t.TempDir()
	env := NewEnv(&bytes.Buffer{}, &bytes.Buffer{})
	env.ConfigFile = filepath.Join(dir, "bv.yml")

	cfg := env.LoadConfig(context.Background())
	if cfg.HasModules() {
		t.Fatal("expected the default store for a missing file")
	}

	mod, err := cfg.AddModule(config.ModuleConfig{Name: "app"})
	if err != nil {
		t.Fatal(err)
	}
	mod.SetVersion(semver.MustParse("1.0.0"))

	if err := env.SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	if _, err := os.Stat(env.ConfigFile); err != nil {
		t.Fatalf("config not written: %v", err)
	}

	reloaded := env.LoadConfig(context.Background())
	m, ok := reloaded.Module("app")
	if !ok || m.CurrentVersion != "1.0.0" {
		t.Errorf("reloaded module = %+v", m)
	}
}

func TestEnv_IsInteractive(t *testing.T) {
	env := &Env{}
	if env.IsInteractive() {
		t.Error("nil Interactive should report false")
	}
	env.Interactive = func() bool { return true }
	if !env.IsInteractive() {
		t.Error("expected true")
	}
}
