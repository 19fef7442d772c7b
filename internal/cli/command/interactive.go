package command

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/respkv/internal/cli/output"
	"github.com/yndnr/respkv/internal/cli/repl"
)

// interactive runs the REPL when no subcommand is given.
func interactive(c *cli.Context) error {
	if c.NArg() > 0 {
		return cli.Exit(fmt.Sprintf("unknown command %q", c.Args().First()), 2)
	}

	mgr := GetConnectionManager(c)
	cfg := GetConfig(c)
	format := ParseGlobalFlags(c).Output

	r := repl.New(func(args []string) error {
		if strings.EqualFold(args[0], "use") {
			if len(args) != 2 {
				return fmt.Errorf("usage: use ADDRESS|NAME")
			}
			return mgr.Use(cfg.Resolve(args[1]))
		}

		client, err := mgr.Client()
		if err != nil {
			return err
		}
		v, err := client.Do(args...)
		if err != nil {
			// Drop the broken connection so the next command redials.
			_ = mgr.Disconnect()
			return err
		}
		return output.NewFormatter(format).Format(c.App.Writer, v)
	})
	r.SetIO(c.App.Reader, c.App.Writer)
	r.SetPrompt(func() string { return mgr.Addr() + "> " })

	history := repl.NewHistory()
	if cfg.HistoryFile != "" {
		history = repl.NewHistoryFile(cfg.HistoryFile)
	}
	if err := history.Load(); err != nil {
		PrintError("load history: %v", err)
	}
	r.SetHistory(history)

	runErr := r.Run()
	if err := history.Save(); err != nil {
		PrintError("save history: %v", err)
	}
	return runErr
}
