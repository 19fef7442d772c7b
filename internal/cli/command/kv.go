package command

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/respkv/internal/cli/output"
)

// PingCommand returns the ping command.
func PingCommand() *cli.Command {
	return &cli.Command{
		Name:   "ping",
		Usage:  "Check that the server answers",
		Action: func(c *cli.Context) error { return send(c, "PING") },
	}
}

// EchoCommand returns the echo command.
func EchoCommand() *cli.Command {
	return &cli.Command{
		Name:      "echo",
		Usage:     "Have the server echo a message",
		ArgsUsage: "MESSAGE",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("usage: echo MESSAGE", 2)
			}
			return send(c, "ECHO", c.Args().First())
		},
	}
}

// SetCommand returns the set command.
func SetCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Store a value",
		ArgsUsage: "KEY VALUE",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:  "px",
				Usage: "expire after this many milliseconds",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit("usage: set [--px MS] KEY VALUE", 2)
			}
			args := []string{"SET", c.Args().Get(0), c.Args().Get(1)}
			if c.IsSet("px") {
				px := c.Int64("px")
				if px < 0 {
					return cli.Exit("--px must not be negative", 2)
				}
				args = append(args, "PX", strconv.FormatInt(px, 10))
			}
			return send(c, args...)
		},
	}
}

// GetCommand returns the get command.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Read a value",
		ArgsUsage: "KEY",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("usage: get KEY", 2)
			}
			return send(c, "GET", c.Args().First())
		},
	}
}

// RawCommand returns the raw command, which sends its arguments unchanged.
func RawCommand() *cli.Command {
	return &cli.Command{
		Name:      "raw",
		Usage:     "Send an arbitrary command",
		ArgsUsage: "COMMAND [ARG...]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.Exit("usage: raw COMMAND [ARG...]", 2)
			}
			return send(c, c.Args().Slice()...)
		},
	}
}

// send runs one command against the current server and prints the reply.
func send(c *cli.Context, args ...string) error {
	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	v, err := client.Do(args...)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	flags := ParseGlobalFlags(c)
	return output.NewFormatter(flags.Output).Format(c.App.Writer, v)
}
