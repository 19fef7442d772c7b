package command

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/respkv/internal/cli/config"
	"github.com/yndnr/respkv/internal/cli/connection"
	"github.com/yndnr/respkv/internal/cli/output"
	"github.com/yndnr/respkv/internal/infra/buildinfo"
)

const (
	metaConnMgr = "connMgr"
	metaConfig  = "config"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "respkv-cli",
		Usage:   "Command-line client for respkv",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			PingCommand(),
			EchoCommand(),
			SetCommand(),
			GetCommand(),
			RawCommand(),
			ConfigCommand(),
		},
		Before: setup,
		After:  teardown,
		Action: interactive,
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "server address or saved server name (default from config, 127.0.0.1:6379)",
			EnvVars: []string{"RESPKV_CLI_SERVER"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format: raw, json, yaml",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "dial and command timeout",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "CLI config file",
			Value:   config.DefaultConfigPath(),
		},
	}
}

// GlobalFlags holds the resolved global settings.
type GlobalFlags struct {
	Server string
	Output output.Format
	Config string
}

// ParseGlobalFlags resolves global settings. Flags override the config file.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	cfg := GetConfig(c)

	flags := &GlobalFlags{
		Server: cfg.Server,
		Output: output.Format(cfg.Output),
		Config: c.String("config"),
	}
	if c.IsSet("server") {
		flags.Server = c.String("server")
	}
	if c.IsSet("output") {
		flags.Output = output.Format(c.String("output"))
	}
	flags.Server = cfg.Resolve(flags.Server)
	return flags
}

func setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("timeout") {
		cfg.Timeout = c.Duration("timeout")
	}
	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]any)
	}
	c.App.Metadata[metaConfig] = cfg

	flags := ParseGlobalFlags(c)
	if !flags.Output.Valid() {
		return fmt.Errorf("invalid output format %q", flags.Output)
	}

	c.App.Metadata[metaConnMgr] = connection.NewManager(flags.Server, cfg.Timeout)
	return nil
}

func teardown(c *cli.Context) error {
	if mgr := GetConnectionManager(c); mgr != nil {
		return mgr.Disconnect()
	}
	return nil
}

// GetConnectionManager retrieves the connection manager from context.
func GetConnectionManager(c *cli.Context) *connection.Manager {
	if mgr, ok := c.App.Metadata[metaConnMgr].(*connection.Manager); ok {
		return mgr
	}
	return nil
}

// GetConfig retrieves the loaded CLI configuration, or defaults.
func GetConfig(c *cli.Context) *config.CLIConfig {
	if cfg, ok := c.App.Metadata[metaConfig].(*config.CLIConfig); ok {
		return cfg
	}
	return config.Default()
}

// EnsureConnected returns the client for the current server.
func EnsureConnected(c *cli.Context) (*connection.Client, error) {
	mgr := GetConnectionManager(c)
	if mgr == nil {
		return nil, errors.New("connection manager not initialized")
	}
	return mgr.Client()
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
