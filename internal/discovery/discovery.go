package discovery

import (
	"context"
	"path/filepath"
	"slices"
	"strings"

	"github.com/indaco/bv/internal/core"
	"github.com/indaco/bv/internal/logging"
	"github.com/indaco/bv/internal/parser"
	"github.com/indaco/bv/internal/semver"
)

// skipDirs are never descended into.
var skipDirs = []string{"node_modules", "vendor", "__pycache__", "target", "dist", "build"}

// Service provides version source discovery functionality.
type Service struct {
	fs     core.FileSystem
	parser *parser.Reader
	diag   logging.Diagnostics
}

// NewService creates a new discovery Service.
func NewService(fs core.FileSystem, diag logging.Diagnostics) *Service {
	if diag == nil {
		diag = logging.Discard()
	}
	return &Service{
		fs:     fs,
		parser: parser.NewReader(fs),
		diag:   diag,
	}
}

// Discover scans root up to maxDepth directory levels below it and returns
// every known manifest holding a valid semantic version. A negative maxDepth
// uses core.MaxDiscoveryDepth.
func (s *Service) Discover(ctx context.Context, root string, maxDepth int) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if maxDepth < 0 {
		maxDepth = core.MaxDiscoveryDepth
	}

	result := &Result{Root: root, Candidates: make([]Candidate, 0)}
	err := s.walk(ctx, root, root, 0, maxDepth, func(c Candidate) {
		result.Candidates = append(result.Candidates, c)
	})
	if err != nil {
		return nil, err
	}

	s.diag.Debug("discovery finished", "root", root, "candidates", len(result.Candidates))
	return result, nil
}

func (s *Service) walk(ctx context.Context, root, dir string, depth, maxDepth int, fn func(Candidate)) error {
	if depth > maxDepth {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	found, err := s.manifestsInDir(ctx, root, dir)
	if err != nil {
		return err
	}
	for _, c := range found {
		fn(c)
	}

	entries, err := s.fs.ReadDir(ctx, dir)
	if err != nil {
		// Skip directories we can't read
		s.diag.Debug("skipping unreadable directory", "dir", dir, "err", err)
		return nil
	}

	for _, entry := range entries {
		if !entry.IsDir() || shouldSkip(entry.Name()) {
			continue
		}
		if err := s.walk(ctx, root, filepath.Join(dir, entry.Name()), depth+1, maxDepth, fn); err != nil {
			return err
		}
	}
	return nil
}

// manifestsInDir finds manifest files in a specific directory.
func (s *Service) manifestsInDir(ctx context.Context, root, dir string) ([]Candidate, error) {
	var out []Candidate

	for _, known := range DefaultKnownManifests() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(dir, known.Filename)
		if info, err := s.fs.Stat(ctx, path); err != nil || info.IsDir() {
			continue
		}

		version, err := s.parser.ReadVersion(ctx, parser.FileConfig{
			Path:   path,
			Format: known.Format,
			Field:  known.Field,
		})
		if err != nil {
			s.diag.Debug("manifest has no readable version", "path", path, "err", err)
			continue
		}
		if _, err := semver.ParseVersion(version); err != nil {
			s.diag.Debug("manifest version is not semantic", "path", path, "version", version)
			continue
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			relPath = path
		}

		out = append(out, Candidate{
			Path:        path,
			RelPath:     filepath.ToSlash(relPath),
			Dir:         filepath.ToSlash(filepath.Dir(relPath)),
			Filename:    known.Filename,
			Version:     version,
			Format:      known.Format,
			Field:       known.Field,
			Description: known.Description,
		})
	}

	return out, nil
}

// shouldSkip reports whether a directory is excluded from scanning.
func shouldSkip(name string) bool {
	return strings.HasPrefix(name, ".") || slices.Contains(skipDirs, name)
}
