package commands

import (
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/docnote/internal/core/validate"
)

// pathLineArgs reads the <path> <line> arguments shared by put, get and
// remove. The returned line is zero-based.
func pathLineArgs(c *cli.Command) (string, int, error) {
	if c.Args().Len() != 2 {
		return "", 0, fmt.Errorf("expected <path> <line>, got %d argument(s)", c.Args().Len())
	}

	path, line := c.Args().Get(0), c.Args().Get(1)
	if err := validate.PathLine(path, line); err != nil {
		return "", 0, err
	}

	idx, err := validate.ParseLine(line)
	if err != nil {
		return "", 0, err
	}

	return path, idx, nil
}

// pathArg reads the single <path> argument.
func pathArg(c *cli.Command) (string, error) {
	if c.Args().Len() != 1 {
		return "", fmt.Errorf("expected <path>, got %d argument(s)", c.Args().Len())
	}

	path := c.Args().First()
	if err := validate.FilePath(path); err != nil {
		return "", err
	}
	return path, nil
}
