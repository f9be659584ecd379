package discovery

import (
	"context"
	"testing"

	"github.com/indaco/bv/internal/config"
	"github.com/indaco/bv/internal/core"
	"github.com/indaco/bv/internal/parser"
)

func newProject() *core.MockFileSystem {
	fs := core.NewMockFileSystem()
	fs.SetFile("/project/package.json", []byte(`{"name": "web", "version": "1.2.3"}`))
	fs.SetFile("/project/VERSION", []byte("1.2.3\n"))
	fs.SetFile("/project/crates/core/Cargo.toml", []byte("[package]\nname = \"core\"\nversion = \"1.2.0\"\n"))
	fs.SetFile("/project/charts/app/Chart.yaml", []byte("apiVersion: v2\nname: app\nversion: 0.4.1\n"))
	fs.SetFile("/project/node_modules/dep/package.json", []byte(`{"version": "9.9.9"}`))
	fs.SetFile("/project/.git/VERSION", []byte("0.0.1\n"))
	fs.SetFile("/project/docs/version.txt", []byte("not a version\n"))
	return fs
}

func TestService_Discover(t *testing.T) {
	svc := NewService(newProject(), nil)
	result, err := svc.Discover(context.Background(), "/project", -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []struct {
		rel    string
		format parser.Format
		field  string
		ver    string
	}{
		{"package.json", parser.FormatJSON, "version", "1.2.3"},
		{"VERSION", parser.FormatRaw, "", "1.2.3"},
		{"charts/app/Chart.yaml", parser.FormatYAML, "version", "0.4.1"},
		{"crates/core/Cargo.toml", parser.FormatTOML, "package.version", "1.2.0"},
	}

	if len(result.Candidates) != len(want) {
		t.Fatalf("got %d candidates, want %d: %+v", len(result.Candidates), len(want), result.Candidates)
	}
	for i, w := range want {
		c := result.Candidates[i]
		if c.RelPath != w.rel || c.Format != w.format || c.Field != w.field || c.Version != w.ver {
			t.Errorf("candidate %d = %+v, want %+v", i, c, w)
		}
	}

	if result.Candidates[0].Dir != "." {
		t.Errorf("root candidate Dir = %q, want \".\"", result.Candidates[0].Dir)
	}
	if result.PrimaryVersion() != "1.2.3" {
		t.Errorf("PrimaryVersion() = %q", result.PrimaryVersion())
	}
}

func TestService_Discover_Depth(t *testing.T) {
	tests := []struct {
		name     string
		maxDepth int
		want     int
	}{
		{name: "root only", maxDepth: 0, want: 2},
		{name: "one level", maxDepth: 1, want: 2},
		{name: "two levels", maxDepth: 2, want: 4},
		{name: "default depth", maxDepth: -1, want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewService(newProject(), nil).Discover(context.Background(), "/project", tt.maxDepth)
			if err != nil {
				t.Fatal(err)
			}
			if got := len(result.Candidates); got != tt.want {
				t.Errorf("candidates = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestService_Discover_Empty(t *testing.T) {
	result, err := NewService(core.NewMockFileSystem(), nil).Discover(context.Background(), "/nothing", -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsEmpty() || result.PrimaryVersion() != "" {
		t.Errorf("expected empty result, got %+v", result)
	}
}

func TestService_Discover_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewService(newProject(), nil).Discover(ctx, "/project", -1); err == nil {
		t.Error("expected context error")
	}
}

func TestCandidate_ModuleFile(t *testing.T) {
	c := Candidate{RelPath: "crates/core/Cargo.toml", Format: parser.FormatTOML, Field: "package.version", Version: "1.2.0"}
	f := c.ModuleFile()
	if f.Path != c.RelPath || f.Format != parser.FormatTOML || f.Field != "package.version" {
		t.Errorf("unexpected file %+v", f)
	}
	if f.Version.String() != "1.2.0" {
		t.Errorf("version = %q", f.Version)
	}
	if !f.IsStructured() {
		t.Error("discovered manifest should be structured")
	}
	if got := c.Label(); got != "crates/core/Cargo.toml (1.2.0)" {
		t.Errorf("Label() = %q", got)
	}
}

func TestKnownManifestFor(t *testing.T) {
	m, ok := KnownManifestFor("pyproject.toml")
	if !ok || m.Field != "project.version" {
		t.Errorf("KnownManifestFor(pyproject.toml) = %+v, %v", m, ok)
	}
	if _, ok := KnownManifestFor("main.go"); ok {
		t.Error("main.go is not a known manifest")
	}
}

/* ------------------------------------------------------------------------- */
/* MISMATCHES                                                                */
/* ------------------------------------------------------------------------- */

func TestDetectMismatches(t *testing.T) {
	result, err := NewService(newProject(), nil).Discover(context.Background(), "/project", -1)
	if err != nil {
		t.Fatal(err)
	}

	got := DetectMismatches(result)
	if len(got) != 2 {
		t.Fatalf("mismatches = %+v", got)
	}
	if got[0].Source != "charts/app/Chart.yaml" || got[0].ExpectedVersion != "1.2.3" || got[0].ActualVersion != "0.4.1" {
		t.Errorf("unexpected first mismatch %+v", got[0])
	}
	if IsVersionConsistent(result) {
		t.Error("IsVersionConsistent() = true")
	}
	if v := UniqueVersions(result); len(v) != 3 {
		t.Errorf("UniqueVersions() = %v", v)
	}
	if DetectMismatches(nil) != nil || !IsVersionConsistent(nil) {
		t.Error("nil result should be consistent")
	}
}

func TestUntracked(t *testing.T) {
	result, err := NewService(newProject(), nil).Discover(context.Background(), "/project", -1)
	if err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{Modules: &[]config.ModuleConfig{
		{Name: "web", Files: []config.ModuleFile{{Path: "package.json"}, {Path: "VERSION"}}},
	}}
	got := Untracked(result, cfg)
	if len(got) != 2 {
		t.Fatalf("untracked = %+v", got)
	}
	for _, c := range got {
		if c.RelPath == "package.json" || c.RelPath == "VERSION" {
			t.Errorf("%s is tracked", c.RelPath)
		}
	}

	if got := Untracked(result, config.Default()); len(got) != 4 {
		t.Errorf("empty store should leave all candidates, got %d", len(got))
	}
}
