package bump

import (
	"context"

	"github.com/indaco/bv/internal/clix"
	"github.com/indaco/bv/internal/semver"
	"github.com/urfave/cli/v3"
)

// Run returns the "bump" parent command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:      "bump",
		Usage:     "Bump the version of every tracked file",
		UsageText: "bv bump <major|minor|patch|release|pre> [--flags]",
		Flags:     bumpFlags(),
		Commands: []*cli.Command{
			kindCmd(env, semver.BumpMajor, "Increment the major version (1.2.3 → 2.0.0)"),
			kindCmd(env, semver.BumpMinor, "Increment the minor version (1.2.3 → 1.3.0)"),
			kindCmd(env, semver.BumpPatch, "Increment the patch version (1.2.3 → 1.2.4)"),
			kindCmd(env, semver.BumpRelease, "Drop the pre-release (1.2.3-rc.1 → 1.2.3)"),
			kindCmd(env, semver.BumpPre, "Increment the pre-release (1.2.3-rc.1 → 1.2.3-rc.2)"),
		},
	}
}

func kindCmd(env *clix.Env, kind semver.BumpKind, usage string) *cli.Command {
	return &cli.Command{
		Name:  string(kind),
		Usage: usage,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runBump(ctx, cmd, env, kind)
		},
	}
}

func bumpFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "module",
			Aliases: []string{"m"},
			Usage:   "Only bump the named module",
		},
		&cli.StringFlag{
			Name:  "new-version",
			Usage: "Set this version instead of incrementing",
		},
		&cli.StringFlag{
			Name:  "pre",
			Usage: "Pre-release label (counter for 'pre', attached verbatim otherwise)",
		},
		&cli.StringFlag{
			Name:  "meta",
			Usage: "Build metadata to attach",
		},
		&cli.StringFlag{
			Name:  "parse",
			Usage: "Regexp with named groups major, minor, patch[, prerelease, build] to read --new-version",
		},
		&cli.StringFlag{
			Name:  "serialize",
			Usage: "Template for versions inside files, e.g. \"{major}.{minor}.{patch}\"",
		},
		&cli.BoolFlag{
			Name:  "commit",
			Usage: "Commit the changed files",
		},
		&cli.StringFlag{
			Name:  "message",
			Usage: "Commit message template",
			Value: defaultMessage,
		},
		&cli.BoolFlag{
			Name:  "tag",
			Usage: "Tag the release",
		},
		&cli.StringFlag{
			Name:  "tag-name",
			Usage: "Tag name template",
			Value: defaultTagName,
		},
		&cli.StringFlag{
			Name:  "tag-message",
			Usage: "Annotated tag message template",
			Value: defaultTagMessage,
		},
		&cli.BoolFlag{
			Name:  "lightweight",
			Usage: "Create a lightweight tag instead of an annotated one",
		},
		&cli.BoolFlag{
			Name:    "dry-run",
			Aliases: []string{"n"},
			Usage:   "Show what would change without writing anything",
		},
	}
}
