package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/docnote/internal/docnote"
)

// AnnotatedPathCompleter returns a ShellCompleteFunc that suggests annotated
// file paths as the first positional argument.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior. Completion runs without the root Before
// hook, so nothing is suggested when the store has not been opened.
func AnnotatedPathCompleter(app *docnote.App) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		// Delegate to default flag completion when typing a flag
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		if app == nil || app.Notes == nil {
			return
		}

		entries, err := app.Notes.List(ctx, "")
		if err != nil {
			return
		}

		w := cmd.Root().Writer
		last := ""
		for _, e := range entries {
			if e.Key.Path == last {
				continue
			}
			last = e.Key.Path
			_, _ = fmt.Fprintln(w, e.Key.Path)
		}
	}
}
