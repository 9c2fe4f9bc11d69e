package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/aigkit/pkg/archive"
	apperrors "github.com/matzehuels/aigkit/pkg/errors"
)

// envMongoURI names the environment fallback for the archive address.
const envMongoURI = "AIGKIT_MONGO_URI"

// runsCommand creates the runs command group for querying the archive.
func (c *CLI) runsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Query the solve run archive",
	}

	cmd.AddCommand(c.runsListCommand())
	cmd.AddCommand(c.runsShowCommand())

	return cmd
}

// runsListCommand creates the "runs list" subcommand.
func (c *CLI) runsListCommand() *cobra.Command {
	var (
		hash     string
		limit    int
		mongoURI string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived solve runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRunsList(cmd.Context(), mongoURI, hash, limit)
		},
	}

	cmd.Flags().StringVar(&hash, "hash", "", "only runs for this circuit hash")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB connection string (default $AIGKIT_MONGO_URI)")

	return cmd
}

func (c *CLI) runRunsList(ctx context.Context, mongoURI, hash string, limit int) error {
	store, err := openArchive(ctx, mongoURI)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	runs, err := store.List(ctx, hash, limit)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStorage, err, "listing runs")
	}
	if len(runs) == 0 {
		printInfo("No archived runs")
		return nil
	}

	rows := make([][]string, len(runs))
	for i, r := range runs {
		rows[i] = []string{
			shortID(r.ID),
			r.Verdict,
			shortID(r.CircuitHash),
			strconv.Itoa(r.Gates),
			r.Duration.Round(time.Millisecond).String(),
			formatRelativeTime(r.CreatedAt),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Verdict", "Circuit", "Gates", "Duration", "When").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row < 0 || row >= len(rows) {
				return lipgloss.NewStyle()
			}
			if col == 1 {
				switch rows[row][1] {
				case "sat":
					return lipgloss.NewStyle().Foreground(colorGreen)
				case "unsat":
					return lipgloss.NewStyle().Foreground(colorRed)
				}
				return lipgloss.NewStyle().Foreground(colorYellow)
			}
			return lipgloss.NewStyle()
		})

	fmt.Println(t.Render())

	return nil
}

// runsShowCommand creates the "runs show" subcommand.
func (c *CLI) runsShowCommand() *cobra.Command {
	var mongoURI string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one archived run in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRunsShow(cmd.Context(), mongoURI, args[0])
		},
	}

	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB connection string (default $AIGKIT_MONGO_URI)")

	return cmd
}

func (c *CLI) runRunsShow(ctx context.Context, mongoURI, id string) error {
	store, err := openArchive(ctx, mongoURI)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	run, err := store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, archive.ErrNotFound) {
			return apperrors.Wrap(apperrors.ErrCodeRunNotFound, err, "run %s", id)
		}
		return apperrors.Wrap(apperrors.ErrCodeStorage, err, "loading run %s", id)
	}

	printKeyValue("ID", run.ID)
	printKeyValue("Circuit", run.CircuitHash)
	printKeyValue("Verdict", run.Verdict)
	printKeyValue("Inputs", strconv.Itoa(run.Inputs))
	printKeyValue("Latches", strconv.Itoa(run.Latches))
	printKeyValue("Outputs", strconv.Itoa(run.Outputs))
	printKeyValue("Gates", strconv.Itoa(run.Gates))
	printKeyValue("Duration", run.Duration.String())
	printKeyValue("Created", run.CreatedAt.Format(time.RFC3339))
	if len(run.Model) > 0 {
		printKeyValue("Model", fmt.Sprintf("%d assignments", len(run.Model)))
	}

	return nil
}

// =============================================================================
// Helpers
// =============================================================================

// openArchive connects to the MongoDB archive. An empty uri falls back
// to AIGKIT_MONGO_URI, then to the driver's localhost default.
func openArchive(ctx context.Context, uri string) (archive.Store, error) {
	if uri == "" {
		uri = os.Getenv(envMongoURI)
	}
	store, err := archive.NewMongoStore(ctx, archive.MongoConfig{URI: uri})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStorage, err, "connecting to run archive")
	}
	return store, nil
}

// shortID abbreviates ids and hashes for table display.
func shortID(s string) string {
	if len(s) > 8 {
		return s[:8]
	}
	return s
}

// formatRelativeTime renders a timestamp as a friendly age.
func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
