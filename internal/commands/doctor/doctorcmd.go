// Package doctor implements the "mellow doctor" command, a report of
// the host environment and effective defaults.
package doctor

import (
	"context"
	"fmt"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/davine-io/mellow/internal/config"
	"github.com/davine-io/mellow/internal/host"
	"github.com/davine-io/mellow/internal/printer"
)

// Run returns the "doctor" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "doctor",
		Usage: "Report host environment and effective configuration",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			report(host.Collect(), cfg)
			return nil
		},
	}
}

func report(info host.Info, cfg *config.Config) {
	printer.PrintBold("Host")
	fmt.Printf("  os: %s/%s\n", info.OS, info.Arch)
	fmt.Printf("  process bits: %d\n", info.ProcessBits)
	fmt.Printf("  os bits: %d\n", info.OSBits)
	fmt.Printf("  interactive: %t\n", info.Interactive)

	if len(info.Env) > 0 {
		printer.PrintBold("Environment")
		names := make([]string, 0, len(info.Env))
		for name := range info.Env {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %s=%s\n", name, info.Env[name])
		}
	}

	printer.PrintBold("INI defaults")
	fmt.Printf("  comment markers: %q\n", cfg.Ini.CommentMarkers)
	fmt.Printf("  null section: %q\n", cfg.Ini.NullSectionName)
	fmt.Printf("  comment prefix: %q\n", cfg.Ini.CommentKeyPrefix)
	fmt.Printf("  ignore comments: %t\n", cfg.Ini.IgnoreComments)
	fmt.Printf("  inline comments: %t\n", cfg.Ini.InlineComments)
	fmt.Printf("  allow bare keys: %t\n", cfg.Ini.AllowBareKeys)
}
