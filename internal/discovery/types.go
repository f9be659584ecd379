package discovery

import (
	"github.com/indaco/bv/internal/config"
	"github.com/indaco/bv/internal/parser"
	"github.com/indaco/bv/internal/semver"
)

// Result represents the complete discovery result for a project.
type Result struct {
	// Root is the directory the scan started from.
	Root string

	// Candidates contains discovered files with a readable version, ordered
	// by directory and then by manifest priority.
	Candidates []Candidate
}

// IsEmpty returns true if no version sources were found.
func (r *Result) IsEmpty() bool {
	return r == nil || len(r.Candidates) == 0
}

// PrimaryVersion returns the highest version among the candidates, or "".
func (r *Result) PrimaryVersion() string {
	if r == nil {
		return ""
	}
	var (
		best  semver.SemVersion
		found bool
	)
	for _, c := range r.Candidates {
		v, err := semver.ParseVersion(c.Version)
		if err != nil {
			continue
		}
		if !found || best.Less(v) {
			best, found = v, true
		}
	}
	if !found {
		return ""
	}
	return best.String()
}

// Candidate is a discovered file with version information.
type Candidate struct {
	// Path is the path to the file, joined onto the discovery root.
	Path string

	// RelPath is the relative path from the discovery root.
	RelPath string

	// Dir is the directory containing the file, relative to the root ("." for the root).
	Dir string

	// Filename is the base name of the file (e.g., "package.json").
	Filename string

	// Version is the extracted version string.
	Version string

	// Format is the file format (json, yaml, toml, raw).
	Format parser.Format

	// Field is the dot-notation path to the version field.
	Field string

	// Description is a human-readable description of the file type.
	Description string
}

// ModuleFile converts the candidate into a tracked file entry. Versions that
// do not parse leave the entry without a version.
func (c Candidate) ModuleFile() config.ModuleFile {
	f := config.ModuleFile{
		Path:   c.RelPath,
		Format: c.Format,
		Field:  c.Field,
	}
	if v, err := semver.ParseVersion(c.Version); err == nil {
		f.Version = config.Semantic(v)
	}
	return f
}

// Label returns a short "path (version)" form for prompts and listings.
func (c Candidate) Label() string {
	return c.RelPath + " (" + c.Version + ")"
}

// Mismatch represents a version mismatch between sources.
type Mismatch struct {
	// Source is the path of the file with the mismatched version.
	Source string

	// ExpectedVersion is what the version should be.
	ExpectedVersion string

	// ActualVersion is the version found in the file.
	ActualVersion string
}

// KnownManifest describes a known manifest file type for discovery.
type KnownManifest struct {
	// Filename is the expected filename.
	Filename string

	// Format is the file format.
	Format parser.Format

	// Field is the dot-notation path to the version field.
	Field string

	// Description is a human-readable description.
	Description string

	// Priority determines discovery order (lower = higher priority).
	Priority int
}

// DefaultKnownManifests returns the list of known manifest files to discover.
func DefaultKnownManifests() []KnownManifest {
	return []KnownManifest{
		{
			Filename:    "package.json",
			Format:      parser.FormatJSON,
			Field:       "version",
			Description: "Node.js (package.json)",
			Priority:    1,
		},
		{
			Filename:    "Cargo.toml",
			Format:      parser.FormatTOML,
			Field:       "package.version",
			Description: "Rust (Cargo.toml)",
			Priority:    2,
		},
		{
			Filename:    "pyproject.toml",
			Format:      parser.FormatTOML,
			Field:       "project.version",
			Description: "Python (pyproject.toml)",
			Priority:    3,
		},
		{
			Filename:    "Chart.yaml",
			Format:      parser.FormatYAML,
			Field:       "version",
			Description: "Helm (Chart.yaml)",
			Priority:    4,
		},
		{
			Filename:    "pubspec.yaml",
			Format:      parser.FormatYAML,
			Field:       "version",
			Description: "Dart/Flutter (pubspec.yaml)",
			Priority:    5,
		},
		{
			Filename:    "composer.json",
			Format:      parser.FormatJSON,
			Field:       "version",
			Description: "PHP (composer.json)",
			Priority:    6,
		},
		{
			Filename:    "version.txt",
			Format:      parser.FormatRaw,
			Description: "Plain text (version.txt)",
			Priority:    10,
		},
		{
			Filename:    "VERSION",
			Format:      parser.FormatRaw,
			Description: "Plain text (VERSION)",
			Priority:    11,
		},
		{
			Filename:    ".version",
			Format:      parser.FormatRaw,
			Description: "Plain text (.version)",
			Priority:    12,
		},
	}
}

// KnownManifestFor returns the known manifest with the given base filename.
func KnownManifestFor(filename string) (KnownManifest, bool) {
	for _, m := range DefaultKnownManifests() {
		if m.Filename == filename {
			return m, true
		}
	}
	return KnownManifest{}, false
}
