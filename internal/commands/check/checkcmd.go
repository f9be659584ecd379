package check

import (
	"context"
	"fmt"

	"github.com/indaco/bv/internal/clix"
	"github.com/indaco/bv/internal/config"
	"github.com/urfave/cli/v3"
)

// Run returns the "check" command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:    "check",
		Aliases: []string{"doctor"},
		Usage:   "Validate the config and the tracked files",
		UsageText: `bv check

Checks module names, search/replace pairs and patterns, that tracked files
exist, and that each file still carries its recorded version.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Treat warnings as failures",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runCheckCmd(ctx, cmd, env)
		},
	}
}

func runCheckCmd(ctx context.Context, cmd *cli.Command, env *clix.Env) error {
	cfg, reason := config.NewLoader(env.FS, env.Logger).LoadWithReason(ctx, env.ConfigFile)
	switch reason {
	case config.LoadOK:
	case config.LoadMissing:
		env.Out.Warningf("Config: %s not found", env.ConfigFile)
	default:
		env.Out.Errorf("Config: %s is %s", env.ConfigFile, reason)
		return fmt.Errorf("config file %s is %s", env.ConfigFile, reason)
	}

	results, err := config.NewValidator(env.FS, cfg, env.RootDir()).Validate(ctx)
	if err != nil {
		return err
	}

	for _, r := range results {
		switch {
		case r.Warning:
			env.Out.Warningf("%s: %s", r.Category, r.Message)
		case r.Passed:
			env.Out.Successf("%s: %s", r.Category, r.Message)
		default:
			env.Out.Errorf("%s: %s", r.Category, r.Message)
		}
	}

	errs := config.ErrorCount(results)
	warns := config.WarningCount(results)
	env.Out.Faintf("%d error(s), %d warning(s)", errs, warns)

	if errs > 0 {
		return fmt.Errorf("%d check(s) failed", errs)
	}
	if cmd.Bool("strict") && warns > 0 {
		return fmt.Errorf("%d warning(s) with --strict", warns)
	}
	return nil
}
