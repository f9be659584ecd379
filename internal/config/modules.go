package config

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/indaco/bv/internal/parser"
	"github.com/indaco/bv/internal/semver"
)

// ModuleList returns the configured modules; nil when none are configured.
func (c *Config) ModuleList() []ModuleConfig {
	if c == nil || c.Modules == nil {
		return nil
	}
	return *c.Modules
}

// HasModules reports whether a "modules" list is present, even if empty.
func (c *Config) HasModules() bool {
	return c != nil && c.Modules != nil
}

// AddModule appends m and returns a pointer to the stored copy.
// Non-empty names must be unique; unnamed modules are always accepted.
// A file may belong to one module only.
func (c *Config) AddModule(m ModuleConfig) (*ModuleConfig, error) {
	if m.Name != "" {
		if _, ok := c.Module(m.Name); ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateModule, m.Name)
		}
	}
	for _, f := range m.Files {
		if err := validateFile(f); err != nil {
			return nil, err
		}
		if owner, ok := c.FileOwner(f.Path); ok {
			return nil, fmt.Errorf("%w: %s is tracked by %s", ErrFileExists, f.Path, owner)
		}
	}
	if c.Modules == nil {
		c.Modules = &[]ModuleConfig{}
	}
	*c.Modules = append(*c.Modules, m)
	return &(*c.Modules)[len(*c.Modules)-1], nil
}

// Module returns the module with the given name.
func (c *Config) Module(name string) (*ModuleConfig, bool) {
	if c == nil || c.Modules == nil {
		return nil, false
	}
	mods := *c.Modules
	for i := range mods {
		if mods[i].Name == name {
			return &mods[i], true
		}
	}
	return nil, false
}

// ModuleOrCreate returns the named module, adding an empty one when missing.
func (c *Config) ModuleOrCreate(name string) (*ModuleConfig, error) {
	if m, ok := c.Module(name); ok && name != "" {
		return m, nil
	}
	return c.AddModule(ModuleConfig{Name: name})
}

// RemoveModule deletes the named module. The list stays present (possibly empty).
func (c *Config) RemoveModule(name string) error {
	if c == nil || c.Modules == nil {
		return fmt.Errorf("%w: %q", ErrModuleNotFound, name)
	}
	idx := slices.IndexFunc(*c.Modules, func(m ModuleConfig) bool { return m.Name == name })
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrModuleNotFound, name)
	}
	*c.Modules = slices.Delete(*c.Modules, idx, idx+1)
	return nil
}

// FileOwner returns the display name of the module that tracks path.
func (c *Config) FileOwner(path string) (string, bool) {
	for i, m := range c.ModuleList() {
		if m.HasFile(path) {
			return m.DisplayName(i), true
		}
	}
	return "", false
}

// Track adds f to m, which must belong to c, unless another module already
// tracks the same path.
func (c *Config) Track(m *ModuleConfig, f ModuleFile) error {
	if !m.HasFile(f.Path) {
		if owner, ok := c.FileOwner(f.Path); ok {
			return fmt.Errorf("%w: %s is tracked by %s", ErrFileExists, f.Path, owner)
		}
	}
	return m.AddFile(f)
}

// AddFile starts tracking f in the module. Use Config.Track to also check
// the other modules.
func (m *ModuleConfig) AddFile(f ModuleFile) error {
	if err := validateFile(f); err != nil {
		return err
	}
	if m.HasFile(f.Path) {
		return fmt.Errorf("%w: %s", ErrFileExists, f.Path)
	}
	m.Files = append(m.Files, f)
	return nil
}

// HasFile reports whether the module tracks path.
func (m *ModuleConfig) HasFile(path string) bool {
	return slices.ContainsFunc(m.Files, func(f ModuleFile) bool { return f.Path == path })
}

// SetVersion records v on every tracked file, and on the legacy
// current_version when that field is in use.
func (m *ModuleConfig) SetVersion(v semver.SemVersion) {
	for i := range m.Files {
		m.Files[i].Version = Semantic(v)
	}
	if m.CurrentVersion != "" || len(m.Files) == 0 {
		m.CurrentVersion = v.String()
	}
}

func validateFile(f ModuleFile) error {
	if f.Path == "" {
		return fmt.Errorf("file path is required")
	}
	if (f.SearchPattern == "") != (f.ReplacePattern == "") {
		return fmt.Errorf("%s: %w", f.Path, ErrUnpairedPatterns)
	}
	if f.Format != "" && !f.Format.IsValid() {
		return fmt.Errorf("%s: invalid format %q", f.Path, f.Format)
	}
	if f.Format == parser.FormatRegex || f.Pattern != "" {
		return validateRegexPattern(f)
	}
	return nil
}

func validateRegexPattern(f ModuleFile) error {
	if f.Format != parser.FormatRegex {
		return fmt.Errorf("%s: pattern requires format %q", f.Path, parser.FormatRegex)
	}
	if f.Pattern == "" {
		return fmt.Errorf("%s: %w", f.Path, ErrMissingPattern)
	}
	re, err := regexp.Compile(f.Pattern)
	if err != nil {
		return fmt.Errorf("%s: invalid pattern %q: %w", f.Path, f.Pattern, err)
	}
	if re.NumSubexp() < 1 {
		return fmt.Errorf("%s: pattern %q must have a capturing group", f.Path, f.Pattern)
	}
	return nil
}
