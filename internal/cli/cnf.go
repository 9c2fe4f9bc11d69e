package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/aigkit/pkg/engine"
)

// cnfCommand creates the cnf command for exporting a DIMACS encoding.
func (c *CLI) cnfCommand() *cobra.Command {
	var (
		output        string
		assertOutputs bool
		noCache       bool
	)

	cmd := &cobra.Command{
		Use:   "cnf <circuit>",
		Short: "Encode the circuit to DIMACS CNF",
		Long: `Encode the circuit to DIMACS CNF via the Tseitin transformation.

Each gate becomes a fresh variable constrained to equal the AND of its
arguments, so formula size stays linear in circuit size. The output
goes to stdout unless -o names a file, and is accepted by any DIMACS
solver. With --assert-outputs a unit clause per output is appended,
making the formula satisfiable exactly when all outputs can be 1 at
once.

Encodings are cached by circuit content hash.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCNF(cmd.Context(), args[0], output, assertOutputs, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if omitted)")
	cmd.Flags().BoolVar(&assertOutputs, "assert-outputs", false, "append unit clauses asserting every output")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runCNF encodes the circuit and writes the DIMACS text.
func (c *CLI) runCNF(ctx context.Context, path, output string, assertOutputs, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	circ, err := loadCircuit(ctx, runner, path)
	if err != nil {
		return err
	}

	f, cached, err := runner.EncodeWithCacheInfo(ctx, circ)
	if err != nil {
		return classify(err)
	}
	if assertOutputs {
		engine.AssertOutputs(f, circ.Graph())
	}

	out, err := openOutput(output)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := f.WriteDIMACS(out); err != nil {
		return err
	}

	if output != "" {
		printSuccess("Encoded %d variables, %d clauses", f.NumVars, f.NumClauses())
		printFile(output)
		printStats(len(circ.Graph().Gates()), 0, cached)
	}

	return nil
}

// openOutput opens the output destination, defaulting to stdout.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
