// Package clix holds the execution environment shared by bv's commands.
package clix

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/indaco/bv/internal/config"
	"github.com/indaco/bv/internal/core"
	"github.com/indaco/bv/internal/git"
	"github.com/indaco/bv/internal/logging"
	"github.com/indaco/bv/internal/printer"
	"github.com/indaco/bv/internal/tui"
)

// GitOperations is the full set of git commands a release needs.
type GitOperations interface {
	core.GitCommitOperations
	core.GitTagOperations
}

// Env is built once by the root command and handed to every subcommand.
// The root command's Before hook fills in ConfigFile and the logger level
// from the global flags.
type Env struct {
	ConfigFile string

	FS       core.FileSystem
	Logger   *log.Logger
	Out      *printer.Printer
	Prompter tui.Prompter
	Git      GitOperations

	// Interactive reports whether prompts may be shown.
	Interactive func() bool
}

// NewEnv returns the production environment writing user output to out and
// diagnostics to diag.
func NewEnv(out, diag io.Writer) *Env {
	return &Env{
		ConfigFile:  config.DefaultConfigFile,
		FS:          core.NewOSFileSystem(),
		Logger:      logging.New(diag, logging.DefaultLevel),
		Out:         printer.New(out),
		Prompter:    tui.NewHuhPrompter(),
		Git:         git.NewOSGitOperations(),
		Interactive: tui.IsInteractive,
	}
}

// LoadConfig reads the store. It never fails; problems are logged and the
// default store is returned.
func (e *Env) LoadConfig(ctx context.Context) *config.Config {
	return config.NewLoader(e.FS, e.Logger).Load(ctx, e.ConfigFile)
}

// SaveConfig persists cfg to the config file.
func (e *Env) SaveConfig(cfg *config.Config) error {
	return config.NewConfigSaver(nil, nil, nil, e.Logger).SaveTo(cfg, e.ConfigFile)
}

// RootDir is the directory relative file paths in the store are resolved
// against: the directory holding the config file.
func (e *Env) RootDir() string {
	return filepath.Dir(e.ConfigFile)
}

// Resolve turns a stored path into one usable from the working directory.
func (e *Env) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(e.RootDir(), path)
}

// StorePath turns a path given on the command line into the form kept in the
// store: relative to RootDir when possible, with forward slashes.
func (e *Env) StorePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	root, err := filepath.Abs(e.RootDir())
	if err != nil {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(rel)
}

// IsInteractive reports whether prompts may be shown.
func (e *Env) IsInteractive() bool {
	return e.Interactive != nil && e.Interactive()
}
