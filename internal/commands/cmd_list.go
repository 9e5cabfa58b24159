package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/docnote/internal/docnote"
	"github.com/hay-kot/docnote/pkg/iojson"
)

const previewWidth = 60

type ListCmd struct {
	flags *Flags
	app   *docnote.App

	// flags
	jsonOutput bool
}

// NewListCmd creates a new list command
func NewListCmd(flags *Flags, app *docnote.App) *ListCmd {
	return &ListCmd{flags: flags, app: app}
}

// Register adds the list command to the application
func (cmd *ListCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "list",
		Aliases:     []string{"ls"},
		Usage:       "List annotations",
		UsageText:   "docnote list [path|glob] [--json]",
		Description: `Displays every annotation, or those of the files matching the argument,
with its location and the first line of its text.

Use --json to emit one JSON record per annotation.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action:        cmd.run,
		ShellComplete: AnnotatedPathCompleter(cmd.app),
	})

	return app
}

func (cmd *ListCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() > 1 {
		return fmt.Errorf("expected at most one [path|glob], got %d", c.Args().Len())
	}

	entries, err := cmd.app.Notes.List(ctx, c.Args().First())
	if err != nil {
		return fmt.Errorf("list annotations: %w", err)
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, e := range entries {
			if err := iojson.WriteLine(out, newRecord(e)); err != nil {
				return fmt.Errorf("encode annotation: %w", err)
			}
		}
		return nil
	}

	if len(entries) == 0 {
		fmt.Fprintf(os.Stderr, "No annotations found\n")
		return nil
	}

	preview := lipgloss.NewStyle().MaxWidth(previewWidth)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "LOCATION\tTEXT")
	for _, e := range entries {
		first, _, _ := strings.Cut(e.Annotation.Text, "\n")
		_, _ = fmt.Fprintf(w, "%s\t%s\n", e.Key.Location(), preview.Render(first))
	}

	return w.Flush()
}
