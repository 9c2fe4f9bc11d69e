package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/aigkit/pkg/sat"
	"github.com/matzehuels/aigkit/pkg/suite"
)

// solveCommand creates the solve command for deciding output satisfiability.
func (c *CLI) solveCommand() *cobra.Command {
	var (
		noCache     bool
		archiveRuns bool
		mongoURI    string
	)

	cmd := &cobra.Command{
		Use:   "solve <circuit>",
		Short: "Decide whether all outputs can be 1 at once",
		Long: `Decide whether all outputs can be 1 at once.

The circuit is Tseitin-encoded, every output is asserted with a unit
clause, and the formula goes to the SAT solver. A SATISFIABLE verdict
comes with a witness: one input assignment that drives every output
high. Verdicts are cached by circuit content hash.

With --archive each fresh solve is recorded in the MongoDB run archive
for later inspection with 'aigkit runs'. The archive address comes
from --mongo-uri or AIGKIT_MONGO_URI.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSolve(cmd.Context(), args[0], noCache, archiveRuns, mongoURI)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&archiveRuns, "archive", false, "record the run in the MongoDB archive")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB connection string (default $AIGKIT_MONGO_URI)")

	return cmd
}

// runSolve solves the circuit and prints the verdict with its witness.
func (c *CLI) runSolve(ctx context.Context, path string, noCache, archiveRuns bool, mongoURI string) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	if archiveRuns {
		store, err := openArchive(ctx, mongoURI)
		if err != nil {
			return err
		}
		defer store.Close(ctx)
		runner.Archive = store
	}

	circ, err := loadCircuit(ctx, runner, path)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Solving...")
	spinner.Start()

	res, cached, err := runner.SolveWithCacheInfo(ctx, circ)
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			return err
		}
		spinner.StopWithError("Solve failed")
		return classify(err)
	}
	spinner.Stop()

	fmt.Println(verdictText(res.Verdict))

	g := circ.Graph()
	if res.Verdict == sat.Sat && len(g.Inputs()) > 0 {
		ins := g.Inputs()
		vec := make([]bool, len(ins))
		for i, id := range ins {
			vec[i] = res.Model[id]
		}
		printKeyValue("Witness", suite.FormatVector(vec))
		for i, id := range ins {
			if name, ok := circ.File.Symbols.Inputs[i]; ok {
				printDetail("%s = %s", name, bit(res.Model[id]))
			}
		}
	}

	printStats(len(g.Gates()), 0, cached)

	return nil
}
