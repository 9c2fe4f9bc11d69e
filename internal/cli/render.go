package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/aigkit/pkg/errors"
	"github.com/matzehuels/aigkit/pkg/render"
)

// renderCommand creates the render command for drawing circuit schematics.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		detailed   bool
	)

	cmd := &cobra.Command{
		Use:   "render <circuit>",
		Short: "Render the circuit as a schematic",
		Long: `Render the circuit as a Graphviz schematic.

Inputs draw as triangles, AND gates as circles, latches as boxes, and
declared outputs as double circles. Dashed edges mark negated
references. Symbol table names label the ports when present.

Formats: dot, svg, png, pdf (comma-separated for several at once).
PDF conversion requires rsvg-convert on the PATH.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], formatsStr, output, detailed)
		},
	}

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "svg", "output format(s): dot, svg, png, pdf (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "label gates with their argument references")

	return cmd
}

// runRender renders the circuit into every requested format.
func (c *CLI) runRender(ctx context.Context, path, formatsStr, output string, detailed bool) error {
	formats, err := render.ParseFormats(formatsStr)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "parsing formats")
	}

	file, err := readFile(path)
	if err != nil {
		return err
	}

	dot := render.ToDOT(file, render.Options{Detailed: detailed})

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	written := make([]string, 0, len(formats))
	for _, format := range formats {
		data, err := render.Render(ctx, dot, format)
		if err != nil {
			spinner.StopWithError("Render failed")
			return err
		}
		dest := outputPath(path, output, format, len(formats) > 1)
		if err := os.WriteFile(dest, data, 0o644); err != nil {
			spinner.StopWithError("Render failed")
			return err
		}
		written = append(written, dest)
	}

	spinner.StopWithSuccess(fmt.Sprintf("Rendered %d file(s)", len(written)))
	for _, dest := range written {
		printFile(dest)
	}

	return nil
}

// outputPath decides where a rendered format lands. An explicit -o with
// an extension wins for single-format runs; otherwise the base (or the
// circuit name) takes the format extension.
func outputPath(input, output string, format render.Format, multi bool) string {
	if output != "" && !multi {
		if filepath.Ext(output) != "" {
			return output
		}
		return output + "." + string(format)
	}
	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	} else {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return base + "." + string(format)
}
