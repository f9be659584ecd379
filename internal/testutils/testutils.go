// Package testutils provides helpers shared by the command tests.
package testutils

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/indaco/bv/internal/clix"
	"github.com/indaco/bv/internal/config"
	"github.com/indaco/bv/internal/core"
	"github.com/indaco/bv/internal/git"
	"github.com/indaco/bv/internal/logging"
	"github.com/indaco/bv/internal/printer"
	"github.com/indaco/bv/internal/tui"
	"github.com/urfave/cli/v3"
)

// NewEnv returns an environment rooted at dir, with mocked git and prompts,
// non-interactive, and user output captured in the returned buffer.
func NewEnv(t *testing.T, dir string) (*clix.Env, *bytes.Buffer) {
	t.Helper()

	printer.SetNoColor(true)
	t.Cleanup(func() { printer.SetNoColor(false) })

	var out bytes.Buffer
	env := &clix.Env{
		ConfigFile:  filepath.Join(dir, config.DefaultConfigFile),
		FS:          core.NewOSFileSystem(),
		Logger:      logging.New(io.Discard, logging.DefaultLevel),
		Out:         printer.New(&out),
		Prompter:    &tui.MockPrompter{},
		Git:         &git.MockGitOperations{},
		Interactive: func() bool { return false },
	}
	return env, &out
}

// BuildCLIForTests wraps commands in a minimal root command.
func BuildCLIForTests(commands []*cli.Command) *cli.Command {
	return &cli.Command{
		Name:      "bv",
		Writer:    io.Discard,
		ErrWriter: io.Discard,
		Commands:  commands,
		// Keep error exits from terminating the test binary.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
}

// RunCLI runs app with args. args[0] is the program name.
func RunCLI(t *testing.T, app *cli.Command, args ...string) error {
	t.Helper()
	return app.Run(context.Background(), args)
}

// WriteFile writes content to dir/name, creating parent directories, and
// returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), core.PermDirDefault); err != nil {
		t.Fatalf("failed to create dir for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), core.PermOwnerRW); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// ReadFile returns the contents of path.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// LoadConfig reads the store the environment points at.
func LoadConfig(t *testing.T, env *clix.Env) *config.Config {
	t.Helper()
	cfg, reason := config.NewLoader(env.FS, nil).LoadWithReason(context.Background(), env.ConfigFile)
	if reason != config.LoadOK {
		t.Fatalf("expected config to load, got reason %s", reason)
	}
	return cfg
}
