package bump

import (
	"context"
	"errors"
	"fmt"

	"github.com/indaco/bv/internal/clix"
	"github.com/indaco/bv/internal/git"
	"github.com/indaco/bv/internal/operations"
	"github.com/indaco/bv/internal/printer"
	"github.com/indaco/bv/internal/semver"
	"github.com/indaco/bv/internal/tui"
	"github.com/urfave/cli/v3"
)

const (
	defaultMessage    = git.DefaultMessage
	defaultTagName    = git.DefaultTagName
	defaultTagMessage = git.DefaultTagMessage
)

// runBump rewrites every tracked file of the selected modules, saves the
// store, then records the release in git when asked to.
func runBump(ctx context.Context, cmd *cli.Command, env *clix.Env, kind semver.BumpKind) error {
	opts := operations.BumpOptions{
		Kind:              kind,
		NewVersion:        cmd.String("new-version"),
		PreRelease:        cmd.String("pre"),
		Metadata:          cmd.String("meta"),
		ParsePattern:      cmd.String("parse"),
		SerializeTemplate: cmd.String("serialize"),
		DryRun:            cmd.Bool("dry-run"),
	}
	release := releaseOptions(cmd)

	cfg := env.LoadConfig(ctx)
	op := operations.NewBumpOperation(env.FS, env.RootDir(), opts, env.Logger)
	env.Logger.Debug("running operation", "op", op.Name())

	results, err := op.Execute(ctx, cfg, cmd.String("module"))
	if err != nil {
		if errors.Is(err, operations.ErrSameVersion) {
			env.Out.Warningf("Nothing to do: %v", err)
			return nil
		}
		return err
	}

	printResults(env.Out, results, opts.DryRun)

	releaser := git.NewReleaser(env.Git, env.Git, env.Logger)
	first, _ := operations.FirstBumped(results)

	if opts.DryRun {
		if release.Enabled() {
			printPlan(env.Out, releaser.Plan(first.From, first.To, release))
		}
		env.Out.Faintf("Dry run: no files were written.")
		return nil
	}

	if err := env.SaveConfig(cfg); err != nil {
		return err
	}

	if !release.Enabled() {
		return nil
	}

	files := make([]string, 0)
	for _, p := range operations.ChangedPaths(results) {
		files = append(files, env.Resolve(p))
	}
	files = append(files, env.ConfigFile)

	var rel git.Release
	err = tui.RunWithSpinner("Recording release...", func() error {
		var releaseErr error
		rel, releaseErr = releaser.Release(files, first.From, first.To, release)
		return releaseErr
	})
	if err != nil {
		return fmt.Errorf("files were updated but the release was not recorded: %w", err)
	}

	if rel.Committed {
		env.Out.Successf("Committed: %s", rel.Message)
	}
	if rel.Tagged {
		env.Out.Successf("Tagged: %s", rel.TagName)
	}
	return nil
}

func releaseOptions(cmd *cli.Command) git.ReleaseOptions {
	return git.ReleaseOptions{
		Commit:      cmd.Bool("commit"),
		Message:     cmd.String("message"),
		Tag:         cmd.Bool("tag"),
		TagName:     cmd.String("tag-name"),
		TagMessage:  cmd.String("tag-message"),
		Lightweight: cmd.Bool("lightweight"),
	}
}

func printResults(out *printer.Printer, results []operations.ModuleResult, dryRun bool) {
	verb := "Bumped"
	if dryRun {
		verb = "Would bump"
	}
	for _, r := range results {
		if r.Skipped {
			out.Warningf("Skipped %s: already at %s", r.Name, r.From)
			continue
		}
		out.Successf("%s %s from %s to %s", verb, r.Name, r.From, r.To)
		for _, f := range r.Files {
			out.Faintf("  %s: %s → %s", f.Path, f.From, f.To)
		}
	}
}

func printPlan(out *printer.Printer, rel git.Release) {
	if rel.Message != "" {
		out.Infof("Would commit: %s", rel.Message)
	}
	if rel.TagName != "" {
		out.Infof("Would tag: %s", rel.TagName)
	}
}
