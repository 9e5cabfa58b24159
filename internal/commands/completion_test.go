package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/docnote/internal/docnote"
)

func runCompletion(t *testing.T, app *docnote.App, args ...string) string {
	t.Helper()

	var buf bytes.Buffer
	flags := &Flags{}

	root := &cli.Command{
		Name:                  "docnote",
		Writer:                &buf,
		EnableShellCompletion: true,
	}
	root = NewGetCmd(flags, app).Register(root)
	root = NewUpdateCmd(flags, app).Register(root)
	root = NewListCmd(flags, app).Register(root)

	args = append(append([]string{"docnote"}, args...), "--generate-shell-completion")
	require.NotPanics(t, func() {
		_ = root.Run(context.Background(), args)
	})
	return buf.String()
}

func TestAnnotatedPathCompleter_StoreNotOpened(t *testing.T) {
	// The root Before hook is skipped during completion, so the app is still
	// the zero value main pre-allocates.
	app := &docnote.App{}

	for _, name := range []string{"get", "update", "list"} {
		t.Run(name, func(t *testing.T) {
			out := runCompletion(t, app, name)
			assert.Empty(t, strings.TrimSpace(out))
		})
	}
}

func TestAnnotatedPathCompleter_ListsPaths(t *testing.T) {
	app := newTestApp(t)
	path := writeSource(t, sourceLines...)

	_, err := runCmd(t, app, "", "put", "--text", "first", path, "1")
	require.NoError(t, err)
	_, err = runCmd(t, app, "", "put", "--text", "second", path, "5")
	require.NoError(t, err)

	out := runCompletion(t, app, "get")
	assert.Equal(t, []string{path}, strings.Fields(out))
}
