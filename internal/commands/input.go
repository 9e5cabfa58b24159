package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/docnote/internal/core/styles"
)

// noteInput resolves annotation text from, in order, the --text flag, the
// --file flag, piped stdin, or an interactive form when stdin is a terminal.
type noteInput struct {
	text string
	file string
}

func (in *noteInput) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "text",
			Aliases:     []string{"t"},
			Usage:       "annotation text",
			Destination: &in.text,
		},
		&cli.StringFlag{
			Name:        "file",
			Aliases:     []string{"f"},
			Usage:       "read annotation text from a file (reads from stdin if not provided)",
			Destination: &in.file,
		},
	}
}

// Read returns the annotation text. initial pre-fills the interactive form.
// Empty text is accepted; trailing line breaks are dropped.
func (in *noteInput) Read(c *cli.Command, title, initial string) (string, error) {
	var text string

	switch {
	case in.text != "":
		text = in.text
	case in.file != "":
		data, err := os.ReadFile(in.file)
		if err != nil {
			return "", fmt.Errorf("read text file: %w", err)
		}
		text = string(data)
	default:
		r := c.Root().Reader
		if r == nil {
			r = os.Stdin
		}

		if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			var err error
			if text, err = promptText(title, initial); err != nil {
				return "", err
			}
			break
		}

		data, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	}

	return strings.TrimRight(text, "\r\n"), nil
}

func promptText(title, initial string) (string, error) {
	text := initial

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title(title).
				Description("Markdown is rendered by 'docnote get --render'").
				Value(&text),
		),
	).WithTheme(styles.FormTheme()).Run()
	if err != nil {
		return "", fmt.Errorf("read annotation: %w", err)
	}

	return text, nil
}
