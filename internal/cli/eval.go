package cli

import (
	"context"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/aigkit/pkg/errors"
	"github.com/matzehuels/aigkit/pkg/suite"
)

// evalCommand creates the eval command for simulating one input vector.
func (c *CLI) evalCommand() *cobra.Command {
	var (
		inputsStr string
		trace     bool
	)

	cmd := &cobra.Command{
		Use:   "eval <circuit>",
		Short: "Evaluate the circuit on an input vector",
		Long: `Evaluate the circuit on an input vector.

The vector assigns one bit per input in declaration order, e.g. -i 01
sets the first input to 0 and the second to 1. Prints the output
vector in declaration order. With --trace every node value is printed,
which is handy when a single gate misbehaves.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEval(cmd.Context(), args[0], inputsStr, trace)
		},
	}

	cmd.Flags().StringVarP(&inputsStr, "inputs", "i", "", "input bits in declaration order, e.g. 0110")
	cmd.Flags().BoolVar(&trace, "trace", false, "print every node value, not just the outputs")

	return cmd
}

// runEval parses the vector, simulates, and prints the outputs.
func (c *CLI) runEval(ctx context.Context, path, inputsStr string, trace bool) error {
	runner, err := c.newRunner(true)
	if err != nil {
		return err
	}
	defer runner.Close()

	circ, err := loadCircuit(ctx, runner, path)
	if err != nil {
		return err
	}

	inputs, err := suite.ParseVector(inputsStr)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidVector, err, "parsing inputs")
	}

	g := circ.Graph()
	values, err := g.Eval(inputs)
	if err != nil {
		return classify(err)
	}
	outs, err := g.OutputValues(values)
	if err != nil {
		return classify(err)
	}

	printKeyValue("Inputs", suite.FormatVector(inputs))
	printKeyValue("Outputs", suite.FormatVector(outs))

	if trace {
		printNewline()
		for _, id := range slices.Sorted(maps.Keys(values)) {
			printDetail("node %d = %s", id, bit(values[id]))
		}
	}

	return nil
}

func bit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
