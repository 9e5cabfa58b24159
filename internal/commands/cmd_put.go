package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/docnote/internal/core/note"
	"github.com/hay-kot/docnote/internal/docnote"
)

type PutCmd struct {
	flags *Flags
	app   *docnote.App

	input noteInput
}

// NewPutCmd creates a new put command
func NewPutCmd(flags *Flags, app *docnote.App) *PutCmd {
	return &PutCmd{flags: flags, app: app}
}

// Register adds the put command to the application
func (cmd *PutCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "put",
		Usage:     "Attach an annotation to a line of a file",
		UsageText: "docnote put <path> <line> [--text TEXT | --file FILE]",
		Description: `Records the annotation together with the lines around it so that
'docnote update' can find the line again after the file is edited.

Lines are numbered from 1. Text is taken from --text, --file, or stdin.
When stdin is a terminal an editor form is shown instead. An existing
annotation on the same line is replaced.`,
		Flags:  cmd.input.Flags(),
		Action: cmd.run,
	})

	return app
}

func (cmd *PutCmd) run(ctx context.Context, c *cli.Command) error {
	path, line, err := pathLineArgs(c)
	if err != nil {
		return err
	}

	var initial string
	if existing, err := cmd.app.Notes.Get(ctx, path, line); err == nil {
		initial = existing.Annotation.Text
	}

	key := note.Key{Path: path, Line: line}
	text, err := cmd.input.Read(c, "Annotation for "+key.Location(), initial)
	if err != nil {
		return err
	}

	entry, err := cmd.app.Notes.Put(ctx, path, line, text)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "Annotated %s\n", entry.Key.Location())
	return nil
}
