package config

import (
	"fmt"

	"github.com/indaco/bv/internal/parser"
	"github.com/indaco/bv/internal/semver"
)

// DefaultConfigFile is the config resource used when none is given.
const DefaultConfigFile = "bv.yml"

// Config is the persisted record of every module bv manages.
//
// Modules is a pointer so that a file without a "modules" key (nil) stays
// distinguishable from "modules: []" (non-nil, empty).
type Config struct {
	Modules *[]ModuleConfig `yaml:"modules"`
}

// ModuleConfig is a named group of tracked files that share a version.
type ModuleConfig struct {
	Name string `yaml:"name,omitempty"`
	// CurrentVersion is the module-wide version used before per-file versions existed.
	CurrentVersion string       `yaml:"current_version,omitempty"`
	Files          []ModuleFile `yaml:"files,omitempty"`
}

// ModuleFile is a file whose contents carry a version string.
type ModuleFile struct {
	Path string `yaml:"path"`

	// SearchPattern and ReplacePattern are set together or not at all.
	SearchPattern  string `yaml:"search_pattern,omitempty"`
	ReplacePattern string `yaml:"replace_pattern,omitempty"`

	// Format and Field select structured rewriting for manifests
	// (package.json, Cargo.toml, ...). Empty means search/replace.
	Format parser.Format `yaml:"format,omitempty"`
	Field  string        `yaml:"field,omitempty"`

	// Pattern is the regexp for format regex; its first capturing group
	// holds the version.
	Pattern string `yaml:"pattern,omitempty"`

	Version VersionSpec `yaml:"version"`
}

// Default returns the store used whenever no usable config exists.
func Default() *Config {
	return &Config{}
}

// HasPatterns reports whether the file carries a search/replace pair.
func (f ModuleFile) HasPatterns() bool {
	return f.SearchPattern != "" && f.ReplacePattern != ""
}

// IsStructured reports whether the file is rewritten field-wise.
func (f ModuleFile) IsStructured() bool {
	switch f.Format {
	case parser.FormatJSON, parser.FormatYAML, parser.FormatTOML:
		return f.Field != ""
	case parser.FormatRegex:
		return f.Pattern != ""
	case parser.FormatRaw:
		return true
	default:
		return false
	}
}

// ParserConfig describes the file for the parser package.
func (f ModuleFile) ParserConfig() parser.FileConfig {
	return parser.FileConfig{
		Path:   f.Path,
		Format:  f.Format,
		Field:   f.Field,
		Pattern: f.Pattern,
	}
}

// DisplayName returns the module name, or a positional label for unnamed modules.
func (m ModuleConfig) DisplayName(index int) string {
	if m.Name != "" {
		return m.Name
	}
	return fmt.Sprintf("module #%d", index+1)
}

// Version returns the module's effective version: the highest semantic version
// among its files, falling back to the legacy CurrentVersion.
func (m ModuleConfig) Version() (semver.SemVersion, error) {
	var (
		best  semver.SemVersion
		found bool
	)
	for _, f := range m.Files {
		v, ok := f.Version.SemVer()
		if !ok {
			continue
		}
		if !found || best.Less(v) {
			best, found = v, true
		}
	}
	if found {
		return best, nil
	}

	if m.CurrentVersion != "" {
		v, err := semver.ParseVersion(m.CurrentVersion)
		if err != nil {
			return semver.SemVersion{}, fmt.Errorf("module %q: current_version: %w", m.Name, err)
		}
		return v, nil
	}

	return semver.SemVersion{}, fmt.Errorf("module %q: %w", m.Name, ErrNoVersion)
}
