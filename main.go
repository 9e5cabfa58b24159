package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/docnote/internal/commands"
	"github.com/hay-kot/docnote/internal/core/config"
	"github.com/hay-kot/docnote/internal/core/logging"
	"github.com/hay-kot/docnote/internal/core/styles"
	"github.com/hay-kot/docnote/internal/docnote"
	"github.com/hay-kot/docnote/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser  func()
		docnoteApp = &docnote.App{}
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "docnote",
		Usage:     "Attach notes to lines of files and keep them there",
		UsageText: "docnote [global options] command [command options]",
		Description: `docnote stores annotations against lines of text files. Each annotation
remembers the lines around it, so after the file is edited 'docnote update'
can find the line again and move the annotation with it.

Run 'docnote put <path> <line>' to annotate a line.
Run 'docnote update <path>' after editing to re-anchor its annotations.`,
		Version:               build(),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("DOCNOTE_LOG_LEVEL"),
				Value:       "warn",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to stderr)",
				Sources:     cli.EnvVars("DOCNOTE_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("DOCNOTE_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("DOCNOTE_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			// Apply configured theme (validation ensures name is valid)
			palette, _ := styles.GetPalette(cfg.Render.Theme)
			styles.SetTheme(palette)

			store, err := docnote.OpenStore(cfg)
			if err != nil {
				return ctx, err
			}

			log.Debug().
				Str("backend", cfg.Store.Backend).
				Str("path", cfg.StorePath()).
				Msg("store opened")

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*docnoteApp = *docnote.NewApp(store, cfg, logging.Component(logging.ComponentNotes))

			if c.Args().Present() {
				ctx = logging.WithCommand(ctx, c.Args().First())
			}

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			// Flush and close the store
			var closeErr error
			if err := docnoteApp.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close store")
				closeErr = fmt.Errorf("close store: %w", err)
			}

			// Close log file
			if logCloser != nil {
				logCloser()
			}
			return closeErr
		},
	}

	app = commands.NewPutCmd(flags, docnoteApp).Register(app)
	app = commands.NewGetCmd(flags, docnoteApp).Register(app)
	app = commands.NewUpdateCmd(flags, docnoteApp).Register(app)
	app = commands.NewRemoveCmd(flags, docnoteApp).Register(app)
	app = commands.NewCleanCmd(flags, docnoteApp).Register(app)
	app = commands.NewListCmd(flags, docnoteApp).Register(app)
	app = commands.NewConfigCmd(flags, docnoteApp).Register(app)

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Fprintln(os.Stderr, runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
