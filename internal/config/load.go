package config

import (
	"context"
	"errors"
	"io/fs"

	"github.com/goccy/go-yaml"
	"github.com/indaco/bv/internal/core"
	"github.com/indaco/bv/internal/logging"
)

// LoadReason tells why Load produced the store it returned. It is a
// diagnostic code, not an error: every reason yields a usable store.
type LoadReason int

const (
	// LoadOK means the store was read from the resource.
	LoadOK LoadReason = iota
	// LoadMissing means the resource does not exist.
	LoadMissing
	// LoadUnreadable means the resource exists but could not be read.
	LoadUnreadable
	// LoadMalformed means the content is not a valid config document.
	LoadMalformed
)

func (r LoadReason) String() string {
	switch r {
	case LoadOK:
		return "ok"
	case LoadMissing:
		return "missing"
	case LoadUnreadable:
		return "unreadable"
	case LoadMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Loader reads a Config from a resource. It never fails: any problem yields
// the default empty store.
type Loader struct {
	fs   core.FileSystem
	diag logging.Diagnostics
}

// NewLoader creates a Loader. Nil dependencies fall back to the OS filesystem
// and a discarding diagnostics sink.
func NewLoader(fs core.FileSystem, diag logging.Diagnostics) *Loader {
	if fs == nil {
		fs = core.NewOSFileSystem()
	}
	if diag == nil {
		diag = logging.Discard()
	}
	return &Loader{fs: fs, diag: diag}
}

// Load returns the store persisted at path, or the default store.
func (l *Loader) Load(ctx context.Context, path string) *Config {
	cfg, _ := l.LoadWithReason(ctx, path)
	return cfg
}

// LoadWithReason is Load plus the reason code describing the outcome.
// Only the missing-resource case is reported as a warning.
func (l *Loader) LoadWithReason(ctx context.Context, path string) (*Config, LoadReason) {
	data, err := l.fs.ReadFile(ctx, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.diag.Warn("no config file found, using default configuration", "path", path)
			return Default(), LoadMissing
		}
		l.diag.Debug("config file could not be read, using default configuration", "path", path, "err", err)
		return Default(), LoadUnreadable
	}

	var cfg Config
	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
		l.diag.Debug("config file is malformed, using default configuration", "path", path, "err", err)
		return Default(), LoadMalformed
	}

	l.diag.Debug("config loaded", "path", path, "modules", len(cfg.ModuleList()))
	return &cfg, LoadOK
}
