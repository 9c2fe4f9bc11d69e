package cli

import (
	"context"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/aigkit/pkg/export"
)

// infoCommand creates the info command for inspecting circuit structure.
func (c *CLI) infoCommand() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "info <circuit>",
		Short: "Show circuit structure and statistics",
		Long: `Show circuit structure and statistics.

Prints the counts from the AIGER header, the content hash used as the
cache key, and the combinational depth (the longest input-to-output
gate chain). With --json the full circuit is emitted as JSON instead,
in the same shape the HTTP API returns.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInfo(cmd.Context(), args[0], jsonOut)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit the circuit as JSON")

	return cmd
}

// runInfo loads the circuit and prints its vital signs.
func (c *CLI) runInfo(ctx context.Context, path string, jsonOut bool) error {
	runner, err := c.newRunner(true)
	if err != nil {
		return err
	}
	defer runner.Close()

	circ, err := loadCircuit(ctx, runner, path)
	if err != nil {
		return err
	}

	if jsonOut {
		return export.Write(circ.File, os.Stdout)
	}

	stats, err := runner.Stats(circ)
	if err != nil {
		return classify(err)
	}

	printKeyValue("File", path)
	printKeyValue("Hash", circ.Hash[:12])
	printKeyValue("Inputs", strconv.Itoa(stats.Inputs))
	printKeyValue("Latches", strconv.Itoa(stats.Latches))
	printKeyValue("Outputs", strconv.Itoa(stats.Outputs))
	printKeyValue("Gates", strconv.Itoa(stats.Gates))
	printKeyValue("Max ID", strconv.FormatUint(uint64(stats.MaxID), 10))
	printKeyValue("Depth", strconv.Itoa(stats.Depth))

	printNewline()
	printNextStep("Check output satisfiability", "aigkit solve "+path)

	return nil
}
