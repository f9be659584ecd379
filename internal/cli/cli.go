package cli

import (
	"context"

	"github.com/indaco/bv/internal/clix"
	"github.com/indaco/bv/internal/commands/add"
	"github.com/indaco/bv/internal/commands/autoadd"
	"github.com/indaco/bv/internal/commands/bump"
	"github.com/indaco/bv/internal/commands/check"
	"github.com/indaco/bv/internal/commands/parse"
	"github.com/indaco/bv/internal/commands/show"
	"github.com/indaco/bv/internal/config"
	"github.com/indaco/bv/internal/logging"
	"github.com/indaco/bv/internal/printer"
	urfavecli "github.com/urfave/cli/v3"
)

// ConfigEnvVar overrides the default config file when --config-file is not given.
const ConfigEnvVar = "BV_CONFIG"

func init() {
	// -v is taken by the verbosity flag.
	urfavecli.VersionFlag = &urfavecli.BoolFlag{
		Name:  "version",
		Usage: "print the version",
	}
}

// New builds and returns the root CLI command,
// configuring all subcommands and flags for the bv cli.
func New(env *clix.Env, version string) *urfavecli.Command {
	return &urfavecli.Command{
		Name:                   "bv",
		Version:                version,
		Usage:                  "Bump the version of every file in a project at once",
		EnableShellCompletion:  true,
		UseShortOptionHandling: true,
		Writer:                 env.Out.Writer(),
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:    "config-file",
				Aliases: []string{"c"},
				Usage:   "Path to the bv config file",
				Value:   config.DefaultConfigFile,
				Sources: urfavecli.EnvVars(ConfigEnvVar),
			},
			&urfavecli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "More diagnostics (repeatable)",
			},
			&urfavecli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Fewer diagnostics (repeatable)",
			},
			&urfavecli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
		},
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			env.ConfigFile = cmd.String("config-file")
			env.Logger.SetLevel(logging.LevelFromVerbosity(cmd.Count("verbose"), cmd.Count("quiet")))
			printer.SetNoColor(cmd.Bool("no-color"))
			return ctx, nil
		},
		Commands: []*urfavecli.Command{
			add.Run(env),
			autoadd.Run(env),
			bump.Run(env),
			show.Run(env),
			parse.Run(env),
			check.Run(env),
		},
	}
}
