package add

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/indaco/bv/internal/clix"
	"github.com/indaco/bv/internal/config"
	"github.com/indaco/bv/internal/discovery"
	"github.com/indaco/bv/internal/parser"
	"github.com/indaco/bv/internal/semver"
	"github.com/urfave/cli/v3"
)

// Run returns the "add" command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Track files that carry the version",
		ArgsUsage: "<path...>",
		UsageText: `bv add [options] <path...>

Known manifests (package.json, Cargo.toml, pyproject.toml, ...) are read
field-wise and need no --current-version. With --pattern the version is the
first capturing group of a regexp. Other files are rewritten with
--search/--replace, defaulting to the literal current version.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "Module to add the files to (created when missing)",
			},
			&cli.StringFlag{
				Name:  "current-version",
				Usage: "Version the files currently carry",
			},
			&cli.StringFlag{
				Name:  "search",
				Usage: "Regexp locating the version; {current_version} expands to the quoted version",
			},
			&cli.StringFlag{
				Name:  "replace",
				Usage: "Replacement template; {new_version} expands to the new version",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Structured format: json, yaml, toml, raw, regex",
			},
			&cli.StringFlag{
				Name:  "pattern",
				Usage: "Regexp whose first capturing group holds the version (implies --format regex)",
			},
			&cli.StringFlag{
				Name:  "field",
				Usage: "Dot-notation path to the version field (default \"version\")",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runAddCmd(ctx, cmd, env)
		},
	}
}

// runAddCmd adds every path to one module and saves the store. Nothing is
// saved unless every path could be added.
func runAddCmd(ctx context.Context, cmd *cli.Command, env *clix.Env) error {
	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return errors.New("at least one path is required")
	}

	format := parser.Format(cmd.String("format"))
	if format != "" && !format.IsValid() {
		return fmt.Errorf("invalid format %q", format)
	}
	pattern := cmd.String("pattern")
	if pattern != "" && format == "" {
		format = parser.FormatRegex
	}

	var explicit *semver.SemVersion
	if s := cmd.String("current-version"); s != "" {
		v, err := semver.ParseVersion(s)
		if err != nil {
			return fmt.Errorf("--current-version: %w", err)
		}
		explicit = &v
	}

	cfg := env.LoadConfig(ctx)
	name := cmd.String("name")
	mod, err := cfg.ModuleOrCreate(name)
	if err != nil {
		return err
	}

	a := adder{
		env:      env,
		module:   mod,
		explicit: explicit,
		search:   cmd.String("search"),
		replace:  cmd.String("replace"),
		format:   format,
		field:    cmd.String("field"),
		pattern:  pattern,
	}

	added := make([]config.ModuleFile, 0, len(paths))
	for _, p := range paths {
		f, err := a.file(ctx, p)
		if err != nil {
			return err
		}
		if err := cfg.Track(mod, f); err != nil {
			return err
		}
		added = append(added, f)
	}

	if err := env.SaveConfig(cfg); err != nil {
		return err
	}

	label := name
	if label == "" {
		label = "(unnamed)"
	}
	for _, f := range added {
		env.Out.Successf("Tracking %s at %s in module %s", f.Path, f.Version, label)
	}
	return nil
}

// adder builds tracked file entries from command-line paths.
type adder struct {
	env      *clix.Env
	module   *config.ModuleConfig
	explicit *semver.SemVersion
	search   string
	replace  string
	format   parser.Format
	field    string
	pattern  string
}

func (a adder) file(ctx context.Context, path string) (config.ModuleFile, error) {
	if _, err := a.env.FS.Stat(ctx, path); err != nil {
		return config.ModuleFile{}, fmt.Errorf("cannot track %s: %w", path, err)
	}

	f := config.ModuleFile{
		Path:           a.env.StorePath(path),
		SearchPattern:  a.search,
		ReplacePattern: a.replace,
		Format:         a.format,
		Field:          a.field,
		Pattern:        a.pattern,
	}

	if f.Format == "" && !f.HasPatterns() {
		if km, ok := discovery.KnownManifestFor(filepath.Base(path)); ok {
			f.Format = km.Format
			f.Field = km.Field
		}
	}
	if f.Field == "" && f.Format != "" && f.Format != parser.FormatRaw && f.Format != parser.FormatRegex {
		f.Field = "version"
	}

	v, err := a.version(ctx, path, f)
	if err != nil {
		return config.ModuleFile{}, err
	}
	f.Version = config.Semantic(v)
	return f, nil
}

// version picks the file's current version: the flag, then the value read
// from a structured file, then the module's existing version.
func (a adder) version(ctx context.Context, path string, f config.ModuleFile) (semver.SemVersion, error) {
	if a.explicit != nil {
		return *a.explicit, nil
	}

	if f.IsStructured() {
		pc := f.ParserConfig()
		pc.Path = path
		raw, err := parser.NewReader(a.env.FS).ReadVersion(ctx, pc)
		if err != nil {
			return semver.SemVersion{}, err
		}
		v, err := semver.ParseVersion(raw)
		if err != nil {
			return semver.SemVersion{}, fmt.Errorf("%s: %w", path, err)
		}
		return v, nil
	}

	if v, err := a.module.Version(); err == nil {
		return v, nil
	}
	return semver.SemVersion{}, fmt.Errorf("%s: --current-version is required for files that are not known manifests", path)
}
