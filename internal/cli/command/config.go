package command

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"go.yaml.in/yaml/v3"

	"github.com/yndnr/respkv/internal/cli/config"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Local CLI configuration",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective CLI configuration",
				Action: configShow,
			},
			{
				Name:      "add-server",
				Usage:     "Save a server address under a name",
				ArgsUsage: "NAME ADDRESS",
				Action:    configAddServer,
			},
			{
				Name:      "remove-server",
				Usage:     "Forget a saved server",
				ArgsUsage: "NAME",
				Action:    configRemoveServer,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	fmt.Fprintf(c.App.Writer, "# %s\n", c.String("config"))
	data, err := yaml.Marshal(GetConfig(c))
	if err != nil {
		return err
	}
	_, err = c.App.Writer.Write(data)
	return err
}

func configAddServer(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit("usage: config add-server NAME ADDRESS", 2)
	}
	name, addr := c.Args().Get(0), c.Args().Get(1)

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	cfg.Servers[name] = addr
	if err := config.Save(cfg, c.String("config")); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "saved %s -> %s\n", name, addr)
	return nil
}

func configRemoveServer(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: config remove-server NAME", 2)
	}
	name := c.Args().First()

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if _, ok := cfg.Servers[name]; !ok {
		return fmt.Errorf("no saved server %q", name)
	}
	delete(cfg.Servers, name)
	if err := config.Save(cfg, c.String("config")); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "removed %s\n", name)
	return nil
}
