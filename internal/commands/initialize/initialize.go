// Package initialize implements the "mellow init" command.
package initialize

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/davine-io/mellow/internal/config"
	"github.com/davine-io/mellow/internal/core"
	"github.com/davine-io/mellow/internal/printer"
	"github.com/davine-io/mellow/internal/tui"
)

// Run returns the "init" command, which writes a default config file.
func Run() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Write a default " + config.DefaultConfigFile + " config file",
		UsageText: "mellow init [--path file] [--force]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "path",
				Usage: "Where to write the config file",
				Value: config.DefaultConfigFile,
			},
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Overwrite an existing config file without asking",
			},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")
	fsys := core.NewOSFileSystem()

	if _, err := fsys.Stat(ctx, path); err == nil && !cmd.Bool("force") {
		ok, err := confirmOverwrite(path)
		if err != nil {
			return err
		}
		if !ok {
			printer.PrintFaint("aborted, " + path + " left untouched")
			return nil
		}
	}

	if err := config.Save(ctx, fsys, path, config.Default()); err != nil {
		return err
	}
	printer.PrintSuccess("created " + path)
	return nil
}

// confirmOverwrite asks before clobbering an existing file. Outside a
// terminal there is nobody to ask, so --force is required.
func confirmOverwrite(path string) (bool, error) {
	if !tui.IsInteractive() {
		return false, fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	overwrite := false
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("%s already exists. Overwrite?", path)).
			Affirmative("Overwrite").
			Negative("Keep").
			Value(&overwrite),
	))
	if err := form.Run(); err != nil {
		return false, fmt.Errorf("prompt failed: %w", err)
	}
	return overwrite, nil
}
