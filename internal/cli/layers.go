package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// layersCommand creates the layers command for printing the topological decomposition.
func (c *CLI) layersCommand() *cobra.Command {
	var outputsFirst bool

	cmd := &cobra.Command{
		Use:   "layers <circuit>",
		Short: "Print the layered topological decomposition",
		Long: `Print the layered topological decomposition.

Layer 0 holds the sources: inputs, latches, and the constant when a
gate reads it. Every gate lands one layer past its deepest argument,
so gates within a layer never depend on each other. With
--outputs-first the orientation flips and layer 0 holds the nodes no
gate consumes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayers(cmd.Context(), args[0], outputsFirst)
		},
	}

	cmd.Flags().BoolVar(&outputsFirst, "outputs-first", false, "orient layers from the outputs instead of the inputs")

	return cmd
}

// runLayers prints one line per layer with the node ids it contains.
func (c *CLI) runLayers(ctx context.Context, path string, outputsFirst bool) error {
	runner, err := c.newRunner(true)
	if err != nil {
		return err
	}
	defer runner.Close()

	circ, err := loadCircuit(ctx, runner, path)
	if err != nil {
		return err
	}

	g := circ.Graph()
	decompose := g.LayersInput
	if outputsFirst {
		decompose = g.LayersOutput
	}
	layers, err := decompose()
	if err != nil {
		return classify(err)
	}

	total := 0
	for i, layer := range layers {
		total += len(layer)
		ids := make([]string, len(layer))
		for j, id := range layer {
			ids[j] = fmt.Sprintf("%d", id)
		}
		label := fmt.Sprintf("layer %d", i)
		fmt.Println(StyleDim.Render(label) + "  " + StyleValue.Render(strings.Join(ids, " ")))
	}

	printNewline()
	printDetail("%d layers, %d nodes", len(layers), total)

	return nil
}
