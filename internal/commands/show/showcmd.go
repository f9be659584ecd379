package show

import (
	"context"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/indaco/bv/internal/clix"
	"github.com/indaco/bv/internal/config"
	"github.com/indaco/bv/internal/printer"
	"github.com/urfave/cli/v3"
)

// Run returns the "show" command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:    "show",
		Aliases: []string{"ls"},
		Usage:   "List modules, their files and versions",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, yaml",
				Value:   "text",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runShowCmd(ctx, cmd, env)
		},
	}
}

func runShowCmd(ctx context.Context, cmd *cli.Command, env *clix.Env) error {
	cfg := env.LoadConfig(ctx)

	switch format := cmd.String("format"); format {
	case "text":
		if len(cfg.ModuleList()) == 0 {
			env.Out.Infof("No modules configured in %s", env.ConfigFile)
			return nil
		}
		env.Out.Println(printer.Tree(env.ConfigFile, moduleNodes(cfg)))
		return nil
	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to render config: %w", err)
		}
		_, err = env.Out.Writer().Write(data)
		return err
	default:
		return fmt.Errorf("unknown format %q (expected text or yaml)", format)
	}
}

func moduleNodes(cfg *config.Config) []printer.Node {
	mods := cfg.ModuleList()
	nodes := make([]printer.Node, 0, len(mods))
	for i, m := range mods {
		label := printer.Bold(m.DisplayName(i))
		if v, err := m.Version(); err == nil {
			label += " " + v.String()
		} else {
			label += " " + printer.Warning("(no version)")
		}

		n := printer.Node{Label: label}
		for _, f := range m.Files {
			n.Children = append(n.Children, printer.Node{Label: fileLabel(f)})
		}
		nodes = append(nodes, n)
	}
	return nodes
}

func fileLabel(f config.ModuleFile) string {
	label := f.Path
	if !f.Version.IsZero() {
		label += " " + f.Version.String()
	}
	switch {
	case f.Pattern != "":
		label += printer.Faint(fmt.Sprintf(" (%s: %s)", f.Format, f.Pattern))
	case f.IsStructured() && f.Field != "":
		label += printer.Faint(fmt.Sprintf(" (%s: %s)", f.Format, f.Field))
	case f.IsStructured():
		label += printer.Faint(fmt.Sprintf(" (%s)", f.Format))
	case f.HasPatterns():
		label += printer.Faint(fmt.Sprintf(" (search: %s)", f.SearchPattern))
	}
	return label
}
