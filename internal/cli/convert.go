package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/aigkit/pkg/aiger"
	apperrors "github.com/matzehuels/aigkit/pkg/errors"
)

// convertCommand creates the convert command for rewriting between AIGER variants.
func (c *CLI) convertCommand() *cobra.Command {
	var formatStr string

	cmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert a circuit between ascii and binary AIGER",
		Long: `Convert a circuit between the ascii "aag" and binary "aig" variants.

The input variant is detected from the file header. The output variant
comes from -f, or from the output extension when the flag is omitted
(.aig means binary, anything else ascii). Symbol tables and comments
survive the round trip. Binary output requires an acyclic circuit
because gates must be reordered so definitions precede uses.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(args[0], args[1], formatStr)
		},
	}

	cmd.Flags().StringVarP(&formatStr, "format", "f", "", "output variant: ascii/aag or binary/aig (default from extension)")

	return cmd
}

// runConvert reads the input and rewrites it in the requested variant.
func (c *CLI) runConvert(input, output, formatStr string) error {
	file, err := readFile(input)
	if err != nil {
		return err
	}

	format, err := detectFormat(output, formatStr)
	if err != nil {
		return err
	}

	if err := file.WriteFile(output, format); err != nil {
		return classify(err)
	}

	printSuccess("Converted to %s", format)
	printFile(output)

	return nil
}

// detectFormat resolves the output variant from the flag, falling back
// to the output file extension.
func detectFormat(output, formatStr string) (aiger.Format, error) {
	if formatStr != "" {
		format, err := aiger.ParseFormat(formatStr)
		if err != nil {
			return 0, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "parsing format")
		}
		return format, nil
	}
	if strings.EqualFold(filepath.Ext(output), ".aig") {
		return aiger.FormatBinary, nil
	}
	return aiger.FormatASCII, nil
}
