package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/hay-kot/docnote/internal/docnote"
)

type ConfigCmd struct {
	flags *Flags
	app   *docnote.App
}

// NewConfigCmd creates a new config command.
func NewConfigCmd(flags *Flags, app *docnote.App) *ConfigCmd {
	return &ConfigCmd{flags: flags, app: app}
}

// Register adds the config command to the application.
func (cmd *ConfigCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration commands",
		Commands: []*cli.Command{
			{
				Name:        "show",
				Usage:       "Print the effective configuration",
				UsageText:   "docnote config show",
				Description: "Prints the configuration after defaults are applied, followed by the resolved file paths.",
				Action:      cmd.runShow,
			},
		},
	})

	return app
}

func (cmd *ConfigCmd) runShow(ctx context.Context, c *cli.Command) error {
	cfg := cmd.app.Config
	out := c.Root().Writer

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	_, _ = fmt.Fprintf(out, "# config file: %s\n", cmd.flags.ConfigPath)
	_, _ = fmt.Fprintf(out, "# data dir:    %s\n", cfg.DataDir)
	_, _ = fmt.Fprintf(out, "# store:       %s\n", cfg.StorePath())
	_, err = out.Write(data)
	return err
}
