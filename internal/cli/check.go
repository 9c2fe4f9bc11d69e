package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/aigkit/pkg/errors"
	"github.com/matzehuels/aigkit/pkg/suite"
)

// checkCommand creates the check command for running regression suites.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <suite.toml>",
		Short: "Run a golden-vector regression suite",
		Long: `Run a golden-vector regression suite.

The manifest is a TOML file of [[case]] tables, each naming a circuit
file (relative to the manifest), an input vector, and the expected
output vector. Every case is evaluated; a broken circuit fails its own
case without stopping the rest.

Exits nonzero when any case fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(args[0])
		},
	}
}

// runCheck loads the manifest, runs every case, and reports each result.
func (c *CLI) runCheck(path string) error {
	s, err := suite.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "suite %s", path)
		}
		return apperrors.Wrap(apperrors.ErrCodeInvalidSuite, err, "loading %s", path)
	}

	results := s.Run()

	failed := 0
	for _, r := range results {
		switch {
		case r.Passed():
			printSuccess("%s", r.Case.Name)
		case r.Err != nil:
			failed++
			printError("%s: %v", r.Case.Name, r.Err)
		default:
			failed++
			printError("%s: got %s, want %s", r.Case.Name, r.Got, r.Case.Outputs)
		}
	}

	printNewline()
	if failed > 0 {
		return fmt.Errorf("%d of %d cases failed", failed, len(results))
	}
	printSuccess("All %d cases passed", len(results))

	return nil
}
