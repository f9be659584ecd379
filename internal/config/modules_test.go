package config

import (
	"errors"
	"testing"

	"github.com/indaco/bv/internal/parser"
	"github.com/indaco/bv/internal/semver"
)

func TestConfig_AddModule(t *testing.T) {
	cfg := Default()
	if cfg.HasModules() {
		t.Fatal("default store should have no module list")
	}

	m, err := cfg.AddModule(ModuleConfig{Name: "app"})
	checkError(t, err, false)
	if m.Name != "app" || !cfg.HasModules() {
		t.Fatalf("unexpected state after add: %+v", cfg)
	}

	_, err = cfg.AddModule(ModuleConfig{Name: "app"})
	if !errors.Is(err, ErrDuplicateModule) {
		t.Errorf("expected ErrDuplicateModule, got %v", err)
	}

	// Unnamed modules never collide.
	_, err = cfg.AddModule(ModuleConfig{})
	checkError(t, err, false)
	_, err = cfg.AddModule(ModuleConfig{})
	checkError(t, err, false)

	if got := len(cfg.ModuleList()); got != 3 {
		t.Errorf("modules = %d, want 3", got)
	}
}

func TestConfig_AddModule_InvalidFile(t *testing.T) {
	tests := []struct {
		name    string
		file    ModuleFile
		wantErr error
	}{
		{name: "missing path", file: ModuleFile{}},
		{name: "search without replace", file: ModuleFile{Path: "a", SearchPattern: "x"}, wantErr: ErrUnpairedPatterns},
		{name: "replace without search", file: ModuleFile{Path: "a", ReplacePattern: "x"}, wantErr: ErrUnpairedPatterns},
		{name: "unknown format", file: ModuleFile{Path: "a", Format: "ini"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			_, err := cfg.AddModule(ModuleConfig{Name: "m", Files: []ModuleFile{tt.file}})
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if cfg.HasModules() {
				t.Error("rejected module must not initialize the list")
			}
		})
	}
}

func TestConfig_ModuleLookup(t *testing.T) {
	cfg := sampleConfig(t)

	if _, ok := cfg.Module("missing"); ok {
		t.Error("Module(missing) reported ok")
	}

	m, ok := cfg.Module("legacy")
	if !ok {
		t.Fatal("Module(legacy) not found")
	}
	m.CurrentVersion = "1.0.0"
	if (*cfg.Modules)[1].CurrentVersion != "1.0.0" {
		t.Error("Module() must return a pointer into the store")
	}

	created, err := cfg.ModuleOrCreate("new")
	checkError(t, err, false)
	again, err := cfg.ModuleOrCreate("new")
	checkError(t, err, false)
	if created.Name != again.Name || len(cfg.ModuleList()) != 3 {
		t.Errorf("ModuleOrCreate created a duplicate: %+v", cfg.ModuleList())
	}

	var nilCfg *Config
	if _, ok := nilCfg.Module("x"); ok || nilCfg.HasModules() || nilCfg.ModuleList() != nil {
		t.Error("nil config must behave as empty")
	}
}

func TestConfig_RemoveModule(t *testing.T) {
	cfg := sampleConfig(t)

	checkError(t, cfg.RemoveModule("app"), false)
	checkError(t, cfg.RemoveModule("legacy"), false)

	if !cfg.HasModules() || len(cfg.ModuleList()) != 0 {
		t.Errorf("list should be present and empty, got %+v", cfg.Modules)
	}
	if err := cfg.RemoveModule("app"); !errors.Is(err, ErrModuleNotFound) {
		t.Errorf("expected ErrModuleNotFound, got %v", err)
	}
	if err := Default().RemoveModule("x"); !errors.Is(err, ErrModuleNotFound) {
		t.Errorf("expected ErrModuleNotFound on empty store, got %v", err)
	}
}

func TestModuleConfig_AddFile(t *testing.T) {
	m := &ModuleConfig{Name: "app"}

	checkError(t, m.AddFile(ModuleFile{Path: "VERSION"}), false)
	if !m.HasFile("VERSION") {
		t.Error("HasFile(VERSION) = false")
	}
	if err := m.AddFile(ModuleFile{Path: "VERSION"}); !errors.Is(err, ErrFileExists) {
		t.Errorf("expected ErrFileExists, got %v", err)
	}
	if err := m.AddFile(ModuleFile{Path: "x", SearchPattern: "a"}); !errors.Is(err, ErrUnpairedPatterns) {
		t.Errorf("expected ErrUnpairedPatterns, got %v", err)
	}
}

func TestModuleConfig_AddFile_Regex(t *testing.T) {
	tests := []struct {
		name    string
		file    ModuleFile
		wantErr bool
	}{
		{"valid", ModuleFile{Path: "main.go", Format: parser.FormatRegex, Pattern: `Version = "([^"]+)"`}, false},
		{"missing pattern", ModuleFile{Path: "main.go", Format: parser.FormatRegex}, true},
		{"no capturing group", ModuleFile{Path: "main.go", Format: parser.FormatRegex, Pattern: `Version`}, true},
		{"invalid pattern", ModuleFile{Path: "main.go", Format: parser.FormatRegex, Pattern: `(`}, true},
		{"pattern without regex format", ModuleFile{Path: "main.go", Format: parser.FormatRaw, Pattern: `(\d+)`}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &ModuleConfig{Name: "app"}
			checkError(t, m.AddFile(tt.file), tt.wantErr)
		})
	}

	if err := (&ModuleConfig{}).AddFile(ModuleFile{Path: "x", Format: parser.FormatRegex}); !errors.Is(err, ErrMissingPattern) {
		t.Errorf("expected ErrMissingPattern, got %v", err)
	}
}

func TestConfig_Track(t *testing.T) {
	cfg := Default()
	app, err := cfg.AddModule(ModuleConfig{Name: "app", Files: []ModuleFile{{Path: "VERSION"}}})
	if err != nil {
		t.Fatal(err)
	}
	docs, err := cfg.AddModule(ModuleConfig{Name: "docs"})
	if err != nil {
		t.Fatal(err)
	}

	if err := cfg.Track(docs, ModuleFile{Path: "VERSION"}); !errors.Is(err, ErrFileExists) {
		t.Errorf("expected ErrFileExists for a file owned by another module, got %v", err)
	}
	if err := cfg.Track(app, ModuleFile{Path: "VERSION"}); !errors.Is(err, ErrFileExists) {
		t.Errorf("expected ErrFileExists for a file already in the module, got %v", err)
	}
	checkError(t, cfg.Track(docs, ModuleFile{Path: "docs/conf.py"}), false)

	if owner, ok := cfg.FileOwner("docs/conf.py"); !ok || owner != "docs" {
		t.Errorf("FileOwner() = %q, %v", owner, ok)
	}
	if _, ok := cfg.FileOwner("missing"); ok {
		t.Error("FileOwner() found an untracked path")
	}

	if _, err := cfg.AddModule(ModuleConfig{Name: "other", Files: []ModuleFile{{Path: "VERSION"}}}); !errors.Is(err, ErrFileExists) {
		t.Errorf("AddModule() should reject a tracked path, got %v", err)
	}
}

func TestModuleConfig_SetVersion(t *testing.T) {
	v := semver.MustParse("2.0.0")

	withFiles := ModuleConfig{Files: []ModuleFile{{Path: "a"}, {Path: "b", Version: semVer(t, "1.0.0")}}}
	withFiles.SetVersion(v)
	for _, f := range withFiles.Files {
		if f.Version.String() != "2.0.0" {
			t.Errorf("%s version = %q", f.Path, f.Version)
		}
	}
	if withFiles.CurrentVersion != "" {
		t.Errorf("current_version should stay unset, got %q", withFiles.CurrentVersion)
	}

	legacy := ModuleConfig{CurrentVersion: "1.0.0", Files: []ModuleFile{{Path: "a"}}}
	legacy.SetVersion(v)
	if legacy.CurrentVersion != "2.0.0" {
		t.Errorf("legacy current_version = %q", legacy.CurrentVersion)
	}

	bare := ModuleConfig{}
	bare.SetVersion(v)
	if bare.CurrentVersion != "2.0.0" {
		t.Errorf("file-less module current_version = %q", bare.CurrentVersion)
	}
}

func TestModuleConfig_Version(t *testing.T) {
	tests := []struct {
		name    string
		m       ModuleConfig
		want    string
		wantErr error
	}{
		{
			name: "highest file version wins",
			m: ModuleConfig{Files: []ModuleFile{
				{Path: "a", Version: semVer(t, "1.2.0")},
				{Path: "b", Version: semVer(t, "1.10.0")},
				{Path: "c", Version: semVer(t, "1.10.0-rc.1")},
			}},
			want: "1.10.0",
		},
		{
			name: "files without versions fall back to current_version",
			m:    ModuleConfig{CurrentVersion: "0.3.0", Files: []ModuleFile{{Path: "a"}}},
			want: "0.3.0",
		},
		{
			name:    "nothing to go on",
			m:       ModuleConfig{Name: "x"},
			wantErr: ErrNoVersion,
		},
		{
			name:    "malformed current_version",
			m:       ModuleConfig{CurrentVersion: "1.x"},
			wantErr: semver.ErrMalformedVersion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.m.Version()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			checkError(t, err, false)
			if got.String() != tt.want {
				t.Errorf("Version() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestModuleConfig_DisplayName(t *testing.T) {
	if got := (ModuleConfig{Name: "api"}).DisplayName(4); got != "api" {
		t.Errorf("DisplayName() = %q", got)
	}
	if got := (ModuleConfig{}).DisplayName(0); got != "module #1" {
		t.Errorf("DisplayName() = %q", got)
	}
}
