// Package parse implements the "mellow parse" command.
package parse

import (
	"context"
	"fmt"

	"github.com/tidwall/sjson"
	"github.com/urfave/cli/v3"

	"github.com/davine-io/mellow/internal/flexver"
	"github.com/davine-io/mellow/internal/printer"
)

// leftoverNames labels the leftover slots in human and JSON output.
var leftoverNames = [5]string{"major", "minor", "build", "revision", "excess"}

// Run returns the "parse" command.
func Run() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Leniently parse a version string into four components",
		UsageText: "mellow parse [--json] <version-string>",
		ArgsUsage: "<version-string>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Emit the result as JSON",
			},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one version string argument")
	}
	input := cmd.Args().First()
	res := flexver.Parse(input)

	if cmd.Bool("json") {
		out, err := renderJSON(input, res)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	printHuman(res)
	return nil
}

func printHuman(res flexver.Result) {
	label := "status: " + res.Status.String()
	switch {
	case res.Status == flexver.StatusOK:
		printer.PrintSuccess(label)
	case res.Status == flexver.StatusMalformed:
		printer.PrintError(label)
	default:
		printer.PrintWarning(label)
	}

	if res.Status != flexver.StatusMalformed {
		fmt.Printf("version: %s\n", res.Version)
	}
	for i, fragment := range res.Leftover {
		// An ok-excess input like "1.2.3.4." can carry an empty excess
		// slot; report it anyway so the status is accounted for.
		excess := i == len(res.Leftover)-1 && res.Status == flexver.StatusOKExcess
		if fragment != "" || excess {
			fmt.Printf("leftover %s: %s\n", leftoverNames[i], printer.Faint(fragment))
		}
	}
}

// renderJSON builds the result document field by field with sjson so
// the output key order is stable.
func renderJSON(input string, res flexver.Result) (string, error) {
	out := "{}"
	steps := []struct {
		path  string
		value any
	}{
		{"input", input},
		{"status", res.Status.String()},
		{"code", int(res.Status)},
		{"version.major", res.Version.Major},
		{"version.minor", res.Version.Minor},
		{"version.build", res.Version.Build},
		{"version.revision", res.Version.Revision},
		{"version.string", res.Version.String()},
		{"leftover", res.Leftover[:]},
	}
	var err error
	for _, s := range steps {
		if out, err = sjson.Set(out, s.path, s.value); err != nil {
			return "", fmt.Errorf("failed to render result: %w", err)
		}
	}
	return out, nil
}
