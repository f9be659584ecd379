package parser

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/indaco/bv/internal/core"
)

// Writer rewrites version strings inside files.
type Writer struct {
	fs core.FileSystem
}

// NewWriter creates a new Writer with the given filesystem.
func NewWriter(fs core.FileSystem) *Writer {
	return &Writer{fs: fs}
}

// Render returns the contents the file described by cfg would have with
// version stored in it. Nothing is written; see WriteFile.
func (w *Writer) Render(ctx context.Context, cfg FileConfig, version string) ([]byte, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("file path is required")
	}
	if !cfg.Format.IsValid() {
		return nil, fmt.Errorf("invalid format: %s", cfg.Format)
	}

	if cfg.Format == FormatRaw {
		return []byte(strings.TrimSuffix(version, "\n") + "\n"), nil
	}

	data, err := w.fs.ReadFile(ctx, cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", cfg.Path, err)
	}

	var updated []byte
	switch cfg.Format {
	case FormatRegex:
		updated, err = replaceGroup(data, cfg.Path, cfg.Pattern, version)
	default:
		if cfg.Field == "" {
			return nil, fmt.Errorf("field is required for %s format", cfg.Format)
		}
		codec, _ := codecFor(cfg.Format)
		updated, err = codec.set(data, cfg.Field, version)
	}
	if err != nil {
		return nil, fmt.Errorf("in file %q: %w", cfg.Path, err)
	}
	return updated, nil
}

// RenderReplace returns the contents of path with search/replace applied,
// and the number of matches replaced. See ExpandSearch and ExpandReplace for
// the placeholder rules. Zero matches is reported as ErrNoMatch.
func (w *Writer) RenderReplace(ctx context.Context, path, search, replace, current, next string) ([]byte, int, error) {
	re, err := regexp.Compile(ExpandSearch(search, current))
	if err != nil {
		return nil, 0, fmt.Errorf("invalid search pattern %q: %w", search, err)
	}

	data, err := w.fs.ReadFile(ctx, path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read file %q: %w", path, err)
	}

	matches := re.FindAllIndex(data, -1)
	if len(matches) == 0 {
		return nil, 0, fmt.Errorf("%q in %q: %w", re.String(), path, ErrNoMatch)
	}

	return re.ReplaceAll(data, []byte(ExpandReplace(replace, next))), len(matches), nil
}

// WriteFile stores data at path with the permissions bv uses for tracked files.
func (w *Writer) WriteFile(ctx context.Context, path string, data []byte) error {
	if err := w.fs.WriteFile(ctx, path, data, core.PermOwnerRW); err != nil {
		return fmt.Errorf("failed to write file %q: %w", path, err)
	}
	return nil
}

// replaceGroup replaces the first capturing group of every match of pattern.
func replaceGroup(data []byte, path, pattern, version string) ([]byte, error) {
	if pattern == "" {
		return nil, fmt.Errorf("pattern is required for regex format")
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
	}
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("pattern %q must have a capturing group", pattern)
	}

	idx := re.FindAllSubmatchIndex(data, -1)
	if len(idx) == 0 {
		return nil, fmt.Errorf("pattern %q does not match contents of %q", pattern, path)
	}

	var out []byte
	last := 0
	for _, m := range idx {
		if m[2] < 0 {
			continue
		}
		out = append(out, data[last:m[2]]...)
		out = append(out, version...)
		last = m[3]
	}
	return append(out, data[last:]...), nil
}
