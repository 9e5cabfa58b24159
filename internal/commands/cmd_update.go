package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/docnote/internal/core/note"
	"github.com/hay-kot/docnote/internal/core/styles"
	"github.com/hay-kot/docnote/internal/docnote"
	"github.com/hay-kot/docnote/pkg/iojson"
)

type UpdateCmd struct {
	flags *Flags
	app   *docnote.App

	// flags
	jsonOutput bool
	verbose    bool
}

// NewUpdateCmd creates a new update command
func NewUpdateCmd(flags *Flags, app *docnote.App) *UpdateCmd {
	return &UpdateCmd{flags: flags, app: app}
}

// Register adds the update command to the application
func (cmd *UpdateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "update",
		Usage:     "Re-anchor annotations after files changed",
		UsageText: "docnote update <path|glob>... [--json] [--verbose]",
		Description: `Finds each annotated line again in the current content of the file and
moves the annotation to it.

A glob such as 'src/**/*.go' selects every annotated file it matches.
Annotations whose line can no longer be found are reported as orphaned and
left where they were.

Annotations whose line was found at a line another annotation keeps (for
example an orphan left behind on that line) are reported as blocked and also
left where they were. Remove or move the other annotation and run update
again to let them follow.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output one JSON result per file",
				Destination: &cmd.jsonOutput,
			},
			&cli.BoolFlag{
				Name:        "verbose",
				Aliases:     []string{"v"},
				Usage:       "also list annotations that did not move",
				Destination: &cmd.verbose,
			},
		},
		Action:        cmd.run,
		ShellComplete: AnnotatedPathCompleter(cmd.app),
	})

	return app
}

func (cmd *UpdateCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() == 0 {
		return fmt.Errorf("expected at least one <path|glob>")
	}

	paths, err := cmd.app.Notes.AnnotatedPaths(ctx, c.Args().Slice())
	if err != nil {
		return err
	}

	out := c.Root().Writer

	var total docnote.UpdateResult
	for _, path := range paths {
		res, err := cmd.app.Notes.Update(ctx, path)
		if err != nil {
			return fmt.Errorf("update %s: %w", path, err)
		}

		total.Processed += res.Processed
		total.Updated += res.Updated
		total.Orphaned += res.Orphaned
		total.Blocked += res.Blocked

		if cmd.jsonOutput {
			if err := iojson.WriteLine(out, res); err != nil {
				return fmt.Errorf("encode result: %w", err)
			}
			continue
		}

		cmd.printOutcomes(out, res)
	}

	if cmd.jsonOutput {
		return nil
	}

	summary := fmt.Sprintf("%d processed, %d updated, %d orphaned",
		total.Processed, total.Updated, total.Orphaned)
	if total.Blocked > 0 {
		summary += fmt.Sprintf(", %d blocked", total.Blocked)
	}
	_, _ = fmt.Fprintln(out, styles.SummaryStyle.Render("Done ("+summary+")."))
	return nil
}

func (cmd *UpdateCmd) printOutcomes(out io.Writer, res docnote.UpdateResult) {
	for _, o := range res.Outcomes {
		from := note.Key{Path: res.Path, Line: o.From}

		switch o.Status {
		case docnote.StatusMoved:
			_, _ = fmt.Fprintf(out, "%s %s -> %d %s\n",
				styles.MovedStyle.Render("moved   "),
				styles.PathStyle.Render(from.Location()),
				o.To+1,
				styles.MutedStyle.Render(fmt.Sprintf("(%.2f)", o.Score)),
			)
		case docnote.StatusOrphaned:
			_, _ = fmt.Fprintf(out, "%s %s %s\n",
				styles.OrphanedStyle.Render("orphaned"),
				styles.PathStyle.Render(from.Location()),
				styles.MutedStyle.Render("(no match)"),
			)
		case docnote.StatusBlocked:
			_, _ = fmt.Fprintf(out, "%s %s %s\n",
				styles.OrphanedStyle.Render("blocked "),
				styles.PathStyle.Render(from.Location()),
				styles.MutedStyle.Render(fmt.Sprintf("(line %d already annotated)", o.To+1)),
			)
		case docnote.StatusMatched:
			if cmd.verbose {
				_, _ = fmt.Fprintf(out, "%s %s\n",
					styles.MatchedStyle.Render("ok      "),
					styles.PathStyle.Render(from.Location()),
				)
			}
		}
	}
}
