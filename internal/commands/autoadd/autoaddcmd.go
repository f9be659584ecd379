package autoadd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/indaco/bv/internal/clix"
	"github.com/indaco/bv/internal/discovery"
	"github.com/indaco/bv/internal/tui"
	"github.com/urfave/cli/v3"
)

// fallbackModuleName is used when the scanned directory has no usable name.
const fallbackModuleName = "default"

// Run returns the "auto-add" command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:    "auto-add",
		Aliases: []string{"discover"},
		Usage:   "Find version-carrying manifests and track them",
		UsageText: `bv auto-add [options]

Scans the project for known manifests (package.json, Cargo.toml,
pyproject.toml, Chart.yaml, .version, ...) that are not tracked yet and
adds the selected ones to a module. Without a terminal, --yes is needed to
add anything; otherwise the candidates are only listed.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "root",
				Usage: "Directory to scan",
				Value: ".",
			},
			&cli.IntFlag{
				Name:        "depth",
				Usage:       "Maximum directory depth to scan",
				Value:       -1,
				DefaultText: "3",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Add every candidate without prompting",
			},
			&cli.StringFlag{
				Name:        "name",
				Aliases:     []string{"n"},
				Usage:       "Module to add the files to",
				DefaultText: "name of the scanned directory",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runAutoAddCmd(ctx, cmd, env)
		},
	}
}

func runAutoAddCmd(ctx context.Context, cmd *cli.Command, env *clix.Env) error {
	root := cmd.String("root")
	cfg := env.LoadConfig(ctx)

	svc := discovery.NewService(env.FS, env.Logger)
	result, err := svc.Discover(ctx, root, cmd.Int("depth"))
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}

	// Candidates are matched against, and stored as, config-relative paths.
	for i := range result.Candidates {
		result.Candidates[i].RelPath = env.StorePath(result.Candidates[i].Path)
	}

	candidates := discovery.Untracked(result, cfg)
	if len(candidates) == 0 {
		env.Out.Infof("No untracked version files found under %s", root)
		return nil
	}

	reportMismatches(env, result)

	selected, err := choose(env, cmd.Bool("yes"), candidates)
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		return nil
	}

	name := cmd.String("name")
	if name == "" {
		name = defaultModuleName(root)
	}
	mod, err := cfg.ModuleOrCreate(name)
	if err != nil {
		return err
	}

	for _, c := range selected {
		if err := cfg.Track(mod, c.ModuleFile()); err != nil {
			return err
		}
	}

	if err := env.SaveConfig(cfg); err != nil {
		return err
	}

	for _, c := range selected {
		env.Out.Successf("Tracking %s in module %s", c.Label(), name)
	}
	return nil
}

// choose returns the candidates to add. Without --yes an interactive
// terminal gets a multi-select; otherwise the candidates are only listed.
func choose(env *clix.Env, yes bool, candidates []discovery.Candidate) ([]discovery.Candidate, error) {
	if yes {
		return candidates, nil
	}

	if !env.IsInteractive() {
		env.Out.Println("Untracked version files:")
		for _, c := range candidates {
			env.Out.Println("  " + c.Label())
		}
		env.Out.Faintf("Re-run with --yes to track them.")
		return nil, nil
	}

	labels := make([]string, len(candidates))
	for i, c := range candidates {
		labels[i] = c.Label()
	}
	idx, err := env.Prompter.MultiSelect(
		"Track these files?",
		"Selected files are added to the module and bumped together.",
		labels,
	)
	if err != nil {
		if errors.Is(err, tui.ErrCanceled) {
			env.Out.Faintf("Canceled.")
			return nil, nil
		}
		return nil, err
	}

	out := make([]discovery.Candidate, 0, len(idx))
	for _, i := range idx {
		if i >= 0 && i < len(candidates) {
			out = append(out, candidates[i])
		}
	}
	return out, nil
}

func reportMismatches(env *clix.Env, result *discovery.Result) {
	if discovery.IsVersionConsistent(result) {
		return
	}
	env.Out.Warningf("Discovered files disagree on the version: %s",
		strings.Join(discovery.UniqueVersions(result), ", "))
	for _, m := range discovery.DetectMismatches(result) {
		env.Out.Faintf("  %s has %s, expected %s", m.Source, m.ActualVersion, m.ExpectedVersion)
	}
}

// defaultModuleName names the module after the scanned directory.
func defaultModuleName(root string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		return fallbackModuleName
	}
	base := filepath.Base(abs)
	if base == "" || base == "." || base == string(filepath.Separator) {
		return fallbackModuleName
	}
	return base
}
