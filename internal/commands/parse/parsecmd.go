package parse

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/indaco/bv/internal/clix"
	"github.com/indaco/bv/internal/printer"
	"github.com/indaco/bv/internal/semver"
	"github.com/urfave/cli/v3"
)

// Run returns the "parse" command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Split a version into its components",
		ArgsUsage: "<version>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "parse",
				Usage: "Regexp with named groups major, minor, patch[, prerelease, build]",
			},
			&cli.StringFlag{
				Name:  "serialize",
				Usage: "Template to render the parsed version with",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runParseCmd(cmd, env)
		},
	}
}

func runParseCmd(cmd *cli.Command, env *clix.Env) error {
	if cmd.NArg() != 1 {
		return errors.New("exactly one version argument is required")
	}

	v, err := semver.ParseWithPattern(cmd.String("parse"), cmd.Args().First())
	if err != nil {
		return err
	}

	rows := [][2]string{
		{"major", strconv.FormatUint(v.Major, 10)},
		{"minor", strconv.FormatUint(v.Minor, 10)},
		{"patch", strconv.FormatUint(v.Patch, 10)},
		{"prerelease", v.PreRelease},
		{"build", v.Build},
		{"version", v.String()},
	}
	if tmpl := cmd.String("serialize"); tmpl != "" {
		rows = append(rows, [2]string{"serialized", semver.Serialize(tmpl, v)})
	}

	for _, r := range rows {
		env.Out.Println(fmt.Sprintf("%s %s", printer.Faint(fmt.Sprintf("%-11s", r[0])), r[1]))
	}
	return nil
}
