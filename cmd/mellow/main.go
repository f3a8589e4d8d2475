package main

import (
	"context"
	"os"

	"github.com/davine-io/mellow/internal/cli"
	"github.com/davine-io/mellow/internal/config"
	"github.com/davine-io/mellow/internal/core"
	"github.com/davine-io/mellow/internal/printer"
)

func main() {
	if err := runCLI(context.Background(), os.Args); err != nil {
		printer.PrintError(err.Error())
		os.Exit(1)
	}
}

func runCLI(ctx context.Context, args []string) error {
	cfg, err := config.Load(ctx, core.NewOSFileSystem(), "")
	if err != nil {
		return err
	}
	return cli.New(cfg).Run(ctx, args)
}
