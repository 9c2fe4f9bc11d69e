// Package cli implements the aigkit command-line interface.
//
// Commands fall into four groups: inspection (info, layers, eval,
// explore), solving (cnf, solve, check), file handling (convert,
// render), and infrastructure (serve, runs, cache, completion).
// Failures are wrapped in coded errors; main maps the code to the
// process exit status.
package cli

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/aigkit/pkg/aig"
	"github.com/matzehuels/aigkit/pkg/aiger"
	"github.com/matzehuels/aigkit/pkg/buildinfo"
	"github.com/matzehuels/aigkit/pkg/cache"
	"github.com/matzehuels/aigkit/pkg/engine"
	apperrors "github.com/matzehuels/aigkit/pkg/errors"
	"github.com/matzehuels/aigkit/pkg/toposort"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "aigkit"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "aigkit",
		Short:         "aigkit inspects, solves, and renders and-inverter graph circuits",
		Long:          `Aigkit is a toolkit for AIGER circuits: inspect their structure, evaluate input vectors, encode to DIMACS CNF, decide output satisfiability, and render schematics.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.layersCommand())
	root.AddCommand(c.evalCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.cnfCommand())
	root.AddCommand(c.solveCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.runsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates an engine runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*engine.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return engine.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/aigkit/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Error Mapping
// =============================================================================

// loadCircuit reads a circuit through the runner, converting failures
// into coded errors.
func loadCircuit(ctx context.Context, runner *engine.Runner, path string) (*engine.Circuit, error) {
	circ, err := runner.Load(ctx, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "circuit %s", path)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidCircuit, err, "loading %s", path)
	}
	return circ, nil
}

// readFile parses a circuit file directly, for commands that work on the
// file itself rather than through the engine.
func readFile(path string) (*aiger.File, error) {
	f, err := aiger.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "circuit %s", path)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidCircuit, err, "loading %s", path)
	}
	return f, nil
}

// classify maps the library sentinels onto coded errors so every command
// exits with the status its failure deserves. Errors that already carry
// a code pass through unchanged.
func classify(err error) error {
	var coded *apperrors.Error
	if errors.As(err, &coded) {
		return err
	}
	switch {
	case errors.Is(err, toposort.ErrCycle):
		return apperrors.Wrap(apperrors.ErrCodeCycle, err, "circuit has a combinational cycle")
	case errors.Is(err, aig.ErrHasLatches):
		return apperrors.Wrap(apperrors.ErrCodeUnsupported, err, "operation requires a combinational circuit")
	case errors.Is(err, aig.ErrInputWidth):
		return apperrors.Wrap(apperrors.ErrCodeInvalidVector, err, "input vector does not match circuit")
	case errors.Is(err, aig.ErrDanglingRef):
		return apperrors.Wrap(apperrors.ErrCodeInvalidCircuit, err, "circuit references undefined nodes")
	}
	return err
}
