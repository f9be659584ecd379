package config

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/indaco/bv/internal/core"
	"github.com/indaco/bv/internal/parser"
	"github.com/indaco/bv/internal/semver"
)

// ValidationResult represents the result of a validation check.
type ValidationResult struct {
	// Category is the validation category (e.g., "Modules", "Files").
	Category string

	// Passed indicates if the check passed.
	Passed bool

	// Message provides details about the validation result.
	Message string

	// Warning indicates if this is a warning rather than an error.
	Warning bool
}

// Validator validates a loaded configuration against the filesystem.
type Validator struct {
	fs          core.FileSystem
	cfg         *Config
	rootDir     string
	validations []ValidationResult
}

// NewValidator creates a new configuration validator.
// Relative file paths are resolved against rootDir.
func NewValidator(fs core.FileSystem, cfg *Config, rootDir string) *Validator {
	return &Validator{
		fs:          fs,
		cfg:         cfg,
		rootDir:     rootDir,
		validations: make([]ValidationResult, 0),
	}
}

// Validate runs all validation checks and returns the results.
func (v *Validator) Validate(ctx context.Context) ([]ValidationResult, error) {
	v.validations = make([]ValidationResult, 0)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !v.cfg.HasModules() {
		v.addValidation("Modules", true, "no modules configured", true)
		return v.validations, nil
	}

	v.validateModuleNames()
	v.validateSharedFiles()
	for i, m := range v.cfg.ModuleList() {
		v.validateModule(ctx, i, m)
	}

	return v.validations, nil
}

func (v *Validator) validateModuleNames() {
	seen := make(map[string]bool)
	for i, m := range v.cfg.ModuleList() {
		switch {
		case m.Name == "":
			v.addValidation("Modules", true, fmt.Sprintf("%s has no name", m.DisplayName(i)), true)
		case seen[m.Name]:
			v.addValidation("Modules", false, fmt.Sprintf("duplicate module name %q", m.Name), false)
		default:
			seen[m.Name] = true
		}
	}
}

// validateSharedFiles reports files tracked by more than one module.
func (v *Validator) validateSharedFiles() {
	owners := make(map[string]string)
	for i, m := range v.cfg.ModuleList() {
		label := m.DisplayName(i)
		for _, f := range m.Files {
			if owner, ok := owners[f.Path]; ok && owner != label {
				v.addValidation("Files", false, fmt.Sprintf("%s is tracked by both %s and %s", f.Path, owner, label), false)
				continue
			}
			owners[f.Path] = label
		}
	}
}

func (v *Validator) validateModule(ctx context.Context, index int, m ModuleConfig) {
	label := m.DisplayName(index)

	if m.CurrentVersion != "" {
		if _, err := semver.ParseVersion(m.CurrentVersion); err != nil {
			v.addValidation("Versions", false, fmt.Sprintf("%s: current_version: %v", label, err), false)
		}
	}

	if len(m.Files) == 0 {
		v.addValidation("Files", true, fmt.Sprintf("%s tracks no files", label), true)
		return
	}

	for _, f := range m.Files {
		v.validateFile(ctx, label, f)
	}
}

func (v *Validator) validateFile(ctx context.Context, label string, f ModuleFile) {
	if err := validateFile(f); err != nil {
		v.addValidation("Files", false, fmt.Sprintf("%s: %v", label, err), false)
		return
	}

	if f.Version.IsZero() {
		v.addValidation("Versions", false, fmt.Sprintf("%s: %s has no version", label, f.Path), false)
	}

	if f.HasPatterns() {
		if _, err := regexp.Compile(parser.ExpandSearch(f.SearchPattern, f.Version.String())); err != nil {
			v.addValidation("Patterns", false, fmt.Sprintf("%s: %s: invalid search pattern: %v", label, f.Path, err), false)
		}
	}

	path := f.Path
	if !filepath.IsAbs(path) && v.rootDir != "" {
		path = filepath.Join(v.rootDir, path)
	}
	if _, err := v.fs.Stat(ctx, path); err != nil {
		v.addValidation("Files", false, fmt.Sprintf("%s: %s: %v", label, f.Path, err), false)
		return
	}

	v.addValidation("Files", true, fmt.Sprintf("%s: %s", label, f.Path), false)

	if !f.Version.IsZero() {
		v.validateDrift(ctx, label, path, f)
	}
}

// validateDrift checks that the file still carries the stored version.
func (v *Validator) validateDrift(ctx context.Context, label, path string, f ModuleFile) {
	stored := f.Version.String()

	if f.IsStructured() {
		pc := f.ParserConfig()
		pc.Path = path
		onDisk, err := parser.NewReader(v.fs).ReadVersion(ctx, pc)
		switch {
		case err != nil:
			v.addValidation("Versions", false, fmt.Sprintf("%s: %s: %v", label, f.Path, err), false)
		case onDisk != stored:
			v.addValidation("Versions", false, fmt.Sprintf("%s: %s has version %s, expected %s", label, f.Path, onDisk, stored), false)
		}
		return
	}

	re, err := regexp.Compile(parser.ExpandSearch(f.SearchPattern, stored))
	if err != nil {
		return
	}
	data, err := v.fs.ReadFile(ctx, path)
	if err != nil {
		v.addValidation("Files", false, fmt.Sprintf("%s: %s: %v", label, f.Path, err), false)
		return
	}
	if !re.Match(data) {
		v.addValidation("Versions", false, fmt.Sprintf("%s: %s does not contain version %s", label, f.Path, stored), false)
	}
}

// addValidation adds a validation result to the list.
func (v *Validator) addValidation(category string, passed bool, message string, warning bool) {
	v.validations = append(v.validations, ValidationResult{
		Category: category,
		Passed:   passed,
		Message:  message,
		Warning:  warning,
	})
}

// HasErrors returns true if any validation failed.
func HasErrors(results []ValidationResult) bool {
	return ErrorCount(results) > 0
}

// ErrorCount returns the number of failed validations.
func ErrorCount(results []ValidationResult) int {
	count := 0
	for _, r := range results {
		if !r.Passed && !r.Warning {
			count++
		}
	}
	return count
}

// WarningCount returns the number of warnings.
func WarningCount(results []ValidationResult) int {
	count := 0
	for _, r := range results {
		if r.Warning {
			count++
		}
	}
	return count
}
