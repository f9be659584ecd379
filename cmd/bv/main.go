package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/indaco/bv/internal/cli"
	"github.com/indaco/bv/internal/clix"
	"github.com/indaco/bv/internal/printer"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, printer.Error("Error: "+err.Error()))
		os.Exit(1)
	}
}

// runCLI builds the root command for the process environment and runs it.
func runCLI(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	env := clix.NewEnv(os.Stdout, os.Stderr)
	return cli.New(env, version).Run(ctx, args)
}
