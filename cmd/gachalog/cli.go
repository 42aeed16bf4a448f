package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/hpungsan/gachalog/internal/config"
	"github.com/hpungsan/gachalog/internal/db"
	"github.com/hpungsan/gachalog/internal/errors"
	"github.com/hpungsan/gachalog/internal/game"
	"github.com/hpungsan/gachalog/internal/ops"
)

// newCLIApp creates the CLI application with all commands.
// rt may be nil when only help or version output is needed.
func newCLIApp(rt *ops.Runtime) *cli.App {
	app := &cli.App{
		Name:    "gachalog",
		Usage:   "Export gacha pull history as UIGF v4.0",
		Version: Version,
		Commands: []*cli.Command{
			titleCmd(rt, game.Hk4e),
			titleCmd(rt, game.Hkrpg),
			titleCmd(rt, game.Nap),
			allCmd(rt),
			urlCmd(rt),
			summaryCmd(),
			ledgerCmd(rt),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// titleCmd creates the export command for a single title.
func titleCmd(rt *ops.Runtime, f game.Family) *cli.Command {
	return &cli.Command{
		Name:      string(f),
		Usage:     fmt.Sprintf("Export %s pull history (writes to stdout without an output file)", f.DisplayName()),
		ArgsUsage: "[output.json]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Aliases: []string{"u"}, Usage: "Gacha log URL to use instead of discovery"},
			&cli.BoolFlag{Name: "global", Aliases: []string{"g"}, Usage: "Use the global client"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() > 1 {
				return outputError(errors.NewInvalidRequest("at most one output path is allowed"))
			}
			return runExport(c, rt, ops.ExportInput{
				Families: []game.Family{f},
				Region:   game.RegionFor(c.Bool("global")),
				URL:      strings.TrimSpace(c.String("url")),
				Path:     c.Args().First(),
			})
		},
	}
}

// allCmd creates the all command.
func allCmd(rt *ops.Runtime) *cli.Command {
	return &cli.Command{
		Name:      "all",
		Usage:     "Export every installed title into one document",
		ArgsUsage: "[output.json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "global", Aliases: []string{"g"}, Usage: "Use the global clients"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() > 1 {
				return outputError(errors.NewInvalidRequest("at most one output path is allowed"))
			}
			return runExport(c, rt, ops.ExportInput{
				Families: game.Families,
				Region:   game.RegionFor(c.Bool("global")),
				Path:     c.Args().First(),
			})
		},
	}
}

// runExport writes the document to the output file, or to stdout when no
// file is given. With a file, the export result is printed as JSON.
func runExport(c *cli.Context, rt *ops.Runtime, input ops.ExportInput) error {
	if input.Path == "" {
		input.Out = c.App.Writer
	}

	result, err := ops.Export(c.Context, rt, input)
	if err != nil {
		return outputError(err)
	}
	if input.Path == "" {
		return nil
	}
	return outputJSON(c.App.Writer, result)
}

// urlCmd creates the url command.
func urlCmd(rt *ops.Runtime) *cli.Command {
	return &cli.Command{
		Name:      "url",
		Usage:     "Print the cached gacha log URL for a title",
		ArgsUsage: "<" + strings.Join(game.Names(), "|") + ">",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return outputError(errors.NewInvalidRequest("game argument is required"))
			}

			result, err := ops.URL(c.Context, rt, ops.URLInput{Game: c.Args().First()})
			if err != nil {
				return outputError(err)
			}
			_, err = fmt.Fprintln(c.App.Writer, result.URL)
			return err
		},
	}
}

// summaryCmd creates the summary command.
func summaryCmd() *cli.Command {
	return &cli.Command{
		Name:      "summary",
		Usage:     "Summarize an exported UIGF file",
		ArgsUsage: "<file.json>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: ops.FormatMarkdown, Usage: "Output format: md|html"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return outputError(errors.NewInvalidRequest("file argument is required"))
			}

			result, err := ops.Summary(ops.SummaryInput{
				Path:   c.Args().First(),
				Format: c.String("format"),
			})
			if err != nil {
				return outputError(err)
			}
			_, err = io.WriteString(c.App.Writer, result.Rendered)
			return err
		},
	}
}

// ledgerCmd creates the ledger command.
func ledgerCmd(rt *ops.Runtime) *cli.Command {
	return &cli.Command{
		Name:  "ledger",
		Usage: "List past export runs",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "game", Usage: "Filter by title: hk4e|hkrpg|nap"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultListLimit, Usage: "Max results"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Value: 0, Usage: "Pagination offset"},
		},
		Action: func(c *cli.Context) error {
			var database *sql.DB
			if rt != nil {
				database = rt.DB
			}

			result, err := ops.ListLedger(database, ops.LedgerInput{
				Game:   c.String("game"),
				Limit:  c.Int("limit"),
				Offset: c.Int("offset"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(c.App.Writer, result)
		},
	}
}

// openLedger opens the export ledger unless it is disabled. A ledger that
// cannot be opened is logged and treated as disabled.
func openLedger(cfg *config.Config, baseDir string, logger *slog.Logger) *sql.DB {
	if cfg.DisableLedger {
		return nil
	}
	database, err := db.Init(baseDir)
	if err != nil {
		logger.Warn("export ledger unavailable", "err", err)
		return nil
	}
	return database
}

// outputJSON writes v as indented JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if gErr, ok := errors.As(err); ok {
		msg := gErr.Message
		if full := err.Error(); full != gErr.Error() {
			msg = strings.TrimSuffix(full, gErr.Error()) + gErr.Message
		}
		return cli.Exit(fmt.Sprintf("[%s] %s", gErr.Code, msg), 1)
	}
	return cli.Exit(err.Error(), 1)
}
