package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/docnote/internal/docnote"
)

type CleanCmd struct {
	flags *Flags
	app   *docnote.App
}

// NewCleanCmd creates a new clean command
func NewCleanCmd(flags *Flags, app *docnote.App) *CleanCmd {
	return &CleanCmd{flags: flags, app: app}
}

// Register adds the clean command to the application
func (cmd *CleanCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:          "clean",
		Usage:         "Delete every annotation of a file",
		UsageText:     "docnote clean <path>",
		Description:   "Fails when the file has no annotations.",
		Action:        cmd.run,
		ShellComplete: AnnotatedPathCompleter(cmd.app),
	})

	return app
}

func (cmd *CleanCmd) run(ctx context.Context, c *cli.Command) error {
	path, err := pathArg(c)
	if err != nil {
		return err
	}

	removed, err := cmd.app.Notes.Clean(ctx, path)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "Removed %d annotation(s) from %s\n", removed, path)
	return nil
}
