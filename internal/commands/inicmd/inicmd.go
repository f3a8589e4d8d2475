// Package inicmd implements the "mellow ini" command tree.
package inicmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/davine-io/mellow/internal/config"
	"github.com/davine-io/mellow/internal/convert"
	"github.com/davine-io/mellow/internal/core"
	"github.com/davine-io/mellow/internal/ini"
	"github.com/davine-io/mellow/internal/printer"
)

// Run returns the "ini" parent command. Parsing options default to the
// loaded configuration and can be overridden per invocation.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "ini",
		Usage:     "Read and convert legacy INI files",
		UsageText: "mellow ini <subcommand> [--flags]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "comment-markers",
				Usage: "Characters that introduce a comment",
				Value: cfg.Ini.CommentMarkers,
			},
			&cli.BoolFlag{
				Name:  "ignore-comments",
				Usage: "Drop comments instead of recording CommentN keys",
				Value: cfg.Ini.IgnoreComments,
			},
			&cli.BoolFlag{
				Name:  "inline-comments",
				Usage: "Strip trailing same-line comments from values",
				Value: cfg.Ini.InlineComments,
			},
			&cli.StringFlag{
				Name:  "null-section",
				Usage: "Section name for keys before any [header]",
				Value: cfg.Ini.NullSectionName,
			},
			&cli.StringFlag{
				Name:  "comment-prefix",
				Usage: "Prefix for synthetic comment keys",
				Value: cfg.Ini.CommentKeyPrefix,
			},
			&cli.BoolFlag{
				Name:  "allow-bare-keys",
				Usage: "Treat lines without '=' as keys with a null value",
				Value: cfg.Ini.AllowBareKeys,
			},
		},
		Commands: []*cli.Command{
			getCmd(),
			sectionsCmd(),
			keysCmd(),
			convertCmd(cfg),
		},
	}
}

// newParser builds an ini.Parser from the flag values in scope, with
// duplicate-key warnings going to stderr.
func newParser(cmd *cli.Command) *ini.Parser {
	opts := ini.Options{
		CommentMarkers:        cmd.String("comment-markers"),
		IgnoreComments:        cmd.Bool("ignore-comments"),
		CommentsMustBeOwnLine: !cmd.Bool("inline-comments"),
		NullSectionName:       cmd.String("null-section"),
		AllowKeyWithoutValue:  cmd.Bool("allow-bare-keys"),
		CommentKeyPrefix:      cmd.String("comment-prefix"),
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	return ini.NewParser(core.NewOSFileSystem(), opts, logger)
}

func getCmd() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Print the value of a single key",
		UsageText: "mellow ini get <file> <section> <key>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 3 {
				return fmt.Errorf("expected <file> <section> <key> arguments")
			}
			file, section, key := cmd.Args().Get(0), cmd.Args().Get(1), cmd.Args().Get(2)

			doc, _, err := newParser(cmd).ParseFile(ctx, file)
			if err != nil {
				return err
			}
			s, ok := doc.Section(section)
			if !ok {
				return fmt.Errorf("section %q not found", section)
			}
			value, ok := s.Lookup(key)
			if !ok {
				return fmt.Errorf("key %q not found in section %q", key, section)
			}
			if value != nil {
				fmt.Println(*value)
			}
			return nil
		},
	}
}

func sectionsCmd() *cli.Command {
	return &cli.Command{
		Name:      "sections",
		Usage:     "List section names in file order",
		UsageText: "mellow ini sections <file>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("expected a single <file> argument")
			}
			doc, _, err := newParser(cmd).ParseFile(ctx, cmd.Args().First())
			if err != nil {
				return err
			}
			for _, name := range doc.Sections() {
				fmt.Println(name)
			}
			return nil
		},
	}
}

func keysCmd() *cli.Command {
	return &cli.Command{
		Name:      "keys",
		Usage:     "List key names of a section in file order",
		UsageText: "mellow ini keys <file> [section]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() < 1 || cmd.Args().Len() > 2 {
				return fmt.Errorf("expected <file> [section] arguments")
			}
			p := newParser(cmd)
			doc, _, err := p.ParseFile(ctx, cmd.Args().First())
			if err != nil {
				return err
			}
			section := cmd.String("null-section")
			if cmd.Args().Len() == 2 {
				section = cmd.Args().Get(1)
			}
			s, ok := doc.Section(section)
			if !ok {
				return fmt.Errorf("section %q not found", section)
			}
			for _, key := range s.Keys() {
				fmt.Println(key)
			}
			return nil
		},
	}
}

func convertCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert a whole INI file to JSON, YAML, or TOML",
		UsageText: "mellow ini convert <file> [--to format] [-o out]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "to",
				Usage: "Output format: json, yaml, or toml",
				Value: cfg.Output.Format,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write to a file instead of stdout",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("expected a single <file> argument")
			}
			format, err := convert.ParseFormat(cmd.String("to"))
			if err != nil {
				return err
			}
			doc, _, err := newParser(cmd).ParseFile(ctx, cmd.Args().First())
			if err != nil {
				return err
			}
			out, err := convert.Document(doc, format)
			if err != nil {
				return err
			}
			if target := cmd.String("output"); target != "" {
				if err := core.NewOSFileSystem().WriteFile(ctx, target, out, core.PermOwnerRW); err != nil {
					return fmt.Errorf("failed to write %q: %w", target, err)
				}
				printer.PrintSuccess("wrote " + target)
				return nil
			}
			fmt.Print(string(out))
			return nil
		},
	}
}
