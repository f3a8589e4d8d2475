package cli

import (
	"context"
	"fmt"

	urfavecli "github.com/urfave/cli/v3"

	"github.com/davine-io/mellow/internal/commands/doctor"
	"github.com/davine-io/mellow/internal/commands/inicmd"
	"github.com/davine-io/mellow/internal/commands/initialize"
	"github.com/davine-io/mellow/internal/commands/parse"
	"github.com/davine-io/mellow/internal/config"
	"github.com/davine-io/mellow/internal/printer"
	"github.com/davine-io/mellow/internal/version"
)

var noColorFlag bool

// New builds and returns the root CLI command,
// configuring all subcommands and flags for the mellow cli.
func New(cfg *config.Config) *urfavecli.Command {
	return &urfavecli.Command{
		Name:                  "mellow",
		Version:               fmt.Sprintf("v%s", version.GetVersion()),
		Usage:                 "Tolerant parsers for messy version strings and legacy INI files",
		EnableShellCompletion: true,
		Flags: []urfavecli.Flag{
			&urfavecli.BoolFlag{
				Name:        "no-color",
				Usage:       "Disable colored output",
				Destination: &noColorFlag,
			},
		},
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			printer.SetNoColor(noColorFlag || cfg.Output.NoColor)
			return ctx, nil
		},
		Commands: []*urfavecli.Command{
			parse.Run(),
			inicmd.Run(cfg),
			initialize.Run(),
			doctor.Run(cfg),
		},
	}
}
