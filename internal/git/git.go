package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/indaco/bv/internal/core"
)

// OSGitOperations implements the core git interfaces by running the git binary
// in the current working directory.
type OSGitOperations struct {
	execCommand func(ctx context.Context, name string, arg ...string) *exec.Cmd
}

// NewOSGitOperations creates a new OSGitOperations with the default exec.CommandContext.
func NewOSGitOperations() *OSGitOperations {
	return &OSGitOperations{
		execCommand: exec.CommandContext,
	}
}

// Verify OSGitOperations implements the core git interfaces.
var (
	_ core.GitCommitOperations = (*OSGitOperations)(nil)
	_ core.GitTagOperations    = (*OSGitOperations)(nil)
)

// run executes git with args and returns its trimmed stdout. Failures carry
// git's stderr when it printed anything.
func (g *OSGitOperations) run(what string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), core.TimeoutGit)
	defer cancel()

	cmd := g.execCommand(ctx, "git", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("git %s timed out after %v: %w", what, core.TimeoutGit, err)
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s: %w", msg, err)
		}
		return "", fmt.Errorf("git %s failed: %w", what, err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// IsRepository reports whether the working directory is inside a git work tree.
func (g *OSGitOperations) IsRepository() bool {
	out, err := g.run("rev-parse", "rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

func (g *OSGitOperations) StageFiles(files ...string) error {
	if len(files) == 0 {
		return nil
	}
	_, err := g.run("add", append([]string{"add", "--"}, files...)...)
	return err
}

func (g *OSGitOperations) Commit(message string) error {
	_, err := g.run("commit", "commit", "-m", message)
	return err
}

func (g *OSGitOperations) TagExists(name string) (bool, error) {
	out, err := g.run("tag list", "tag", "-l", name)
	if err != nil {
		return false, fmt.Errorf("failed to list tags: %w", err)
	}
	// If the tag exists, git tag -l will output the tag name
	return out == name, nil
}

func (g *OSGitOperations) CreateAnnotatedTag(name, message string) error {
	_, err := g.run("tag (annotated)", "tag", "-a", name, "-m", message)
	return err
}

func (g *OSGitOperations) CreateLightweightTag(name string) error {
	_, err := g.run("tag (lightweight)", "tag", name)
	return err
}
