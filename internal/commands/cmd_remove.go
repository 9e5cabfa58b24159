package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/docnote/internal/core/note"
	"github.com/hay-kot/docnote/internal/docnote"
)

type RemoveCmd struct {
	flags *Flags
	app   *docnote.App
}

// NewRemoveCmd creates a new remove command
func NewRemoveCmd(flags *Flags, app *docnote.App) *RemoveCmd {
	return &RemoveCmd{flags: flags, app: app}
}

// Register adds the remove command to the application
func (cmd *RemoveCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:          "remove",
		Aliases:       []string{"rm"},
		Usage:         "Delete the annotation on a line",
		UsageText:     "docnote remove <path> <line>",
		Action:        cmd.run,
		ShellComplete: AnnotatedPathCompleter(cmd.app),
	})

	return app
}

func (cmd *RemoveCmd) run(ctx context.Context, c *cli.Command) error {
	path, line, err := pathLineArgs(c)
	if err != nil {
		return err
	}

	if err := cmd.app.Notes.Remove(ctx, path, line); err != nil {
		return err
	}

	key := note.Key{Path: path, Line: line}
	_, _ = fmt.Fprintf(c.Root().Writer, "Removed %s\n", key.Location())
	return nil
}
