package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/docnote/internal/core/config"
	"github.com/hay-kot/docnote/internal/core/styles"
	"github.com/hay-kot/docnote/internal/docnote"
	"github.com/hay-kot/docnote/pkg/iojson"
)

type GetCmd struct {
	flags *Flags
	app   *docnote.App

	// flags
	jsonOutput bool
	render     bool
}

// NewGetCmd creates a new get command
func NewGetCmd(flags *Flags, app *docnote.App) *GetCmd {
	return &GetCmd{flags: flags, app: app}
}

// Register adds the get command to the application
func (cmd *GetCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "get",
		Usage:     "Print the annotation on a line",
		UsageText: "docnote get <path> <line> [--json | --render]",
		Description: `Prints the annotation text stored for the line. The line is looked up as
stored; run 'docnote update' first if the file changed.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output the full record as JSON",
				Destination: &cmd.jsonOutput,
			},
			&cli.BoolFlag{
				Name:        "render",
				Aliases:     []string{"r"},
				Usage:       "render the text as markdown",
				Destination: &cmd.render,
			},
		},
		Action:        cmd.run,
		ShellComplete: AnnotatedPathCompleter(cmd.app),
	})

	return app
}

// record is the JSON form of an annotation. Line is one-based.
type record struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	Line      int       `json:"line"`
	Text      string    `json:"text"`
	Before    []string  `json:"before"`
	Target    string    `json:"target"`
	After     []string  `json:"after"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newRecord(e docnote.Entry) record {
	a := e.Annotation
	return record{
		ID:        a.ID,
		Path:      e.Key.Path,
		Line:      e.Key.Line + 1,
		Text:      a.Text,
		Before:    a.Before,
		Target:    a.Target,
		After:     a.After,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func (cmd *GetCmd) run(ctx context.Context, c *cli.Command) error {
	path, line, err := pathLineArgs(c)
	if err != nil {
		return err
	}

	entry, err := cmd.app.Notes.Get(ctx, path, line)
	if err != nil {
		return err
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		return iojson.WriteLine(out, newRecord(entry))
	}

	if !cmd.render {
		_, _ = fmt.Fprintln(out, entry.Annotation.Text)
		return nil
	}

	rendered, err := renderMarkdown(cmd.app.Config.Render, entry.Annotation.Text)
	if err != nil {
		return fmt.Errorf("render annotation: %w", err)
	}
	_, _ = fmt.Fprint(out, rendered)
	return nil
}

func renderMarkdown(cfg config.RenderConfig, text string) (string, error) {
	opts := []glamour.TermRendererOption{
		glamour.WithWordWrap(cfg.WordWrap),
	}

	if cfg.Style == styles.ThemeStyle {
		opts = append(opts, glamour.WithStyles(styles.GlamourStyle()))
	} else {
		opts = append(opts, glamour.WithStylePath(cfg.Style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}

	return r.Render(text)
}
