package parser

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/indaco/bv/internal/core"
)

// Reader extracts version strings from files.
type Reader struct {
	fs core.FileSystem
}

// NewReader creates a new Reader with the given filesystem.
func NewReader(fs core.FileSystem) *Reader {
	return &Reader{fs: fs}
}

// ReadVersion reads the version string described by cfg.
func (r *Reader) ReadVersion(ctx context.Context, cfg FileConfig) (string, error) {
	if cfg.Path == "" {
		return "", fmt.Errorf("file path is required")
	}
	if !cfg.Format.IsValid() {
		return "", fmt.Errorf("invalid format: %s", cfg.Format)
	}

	data, err := r.fs.ReadFile(ctx, cfg.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %q: %w", cfg.Path, err)
	}

	switch cfg.Format {
	case FormatRaw:
		return strings.TrimSpace(string(data)), nil
	case FormatRegex:
		return readRegex(data, cfg.Path, cfg.Pattern)
	}

	if cfg.Field == "" {
		return "", fmt.Errorf("field is required for %s format", cfg.Format)
	}
	codec, _ := codecFor(cfg.Format)
	version, err := codec.get(data, cfg.Field)
	if err != nil {
		return "", fmt.Errorf("in file %q: %w", cfg.Path, err)
	}
	return version, nil
}

// readRegex extracts a version using a regex pattern with a capturing group.
func readRegex(data []byte, path, pattern string) (string, error) {
	if pattern == "" {
		return "", fmt.Errorf("pattern is required for regex format")
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
	}

	matches := re.FindSubmatch(data)
	if len(matches) < 2 {
		return "", fmt.Errorf("no version match found in %q (pattern %q must have capturing group)", path, pattern)
	}

	return string(matches[1]), nil
}
