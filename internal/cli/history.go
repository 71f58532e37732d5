package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/resumescan/internal/database"
	"github.com/vijay-prabhu/resumescan/internal/output"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse previous analyses",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List previous analyses",
	Long: `List recorded analyses, newest first.

Examples:
  resumescan history list
  resumescan history list --since=7d
  resumescan history list --min-score=60 --limit=5`,
	RunE: runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show an analysis",
	Long: `Show a recorded analysis. The ID may be shortened to any unambiguous prefix.

Examples:
  resumescan history show 3f2a9c1b
  resumescan history show 3f2a9c1b -o text > report.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runHistoryShow,
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate statistics",
	RunE:  runHistoryStats,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an analysis",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

var (
	historySince    string
	historyLimit    int
	historyMinScore float64
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyStatsCmd)
	historyCmd.AddCommand(historyDeleteCmd)

	historyListCmd.Flags().StringVar(&historySince, "since", "", "Time period (e.g., 7d, 2w, 1m)")
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of results")
	historyListCmd.Flags().Float64Var(&historyMinScore, "min-score", 0, "Only show analyses scoring at least this much")

	historyStatsCmd.Flags().StringVar(&historySince, "since", "", "Time period (e.g., 7d, 2w, 1m)")
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	db, err := requireHistory(appConfig)
	if err != nil {
		return err
	}
	defer db.Close()

	opts := database.ListOptions{Limit: historyLimit}

	since, err := sinceFlag(historySince)
	if err != nil {
		return err
	}
	opts.Since = since

	if cmd.Flags().Changed("min-score") {
		opts.MinScore = &historyMinScore
	}

	analyses, err := db.ListAnalyses(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to list analyses: %w", err)
	}

	return output.Output(outputFmt, analyses)
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	db, err := requireHistory(appConfig)
	if err != nil {
		return err
	}
	defer db.Close()

	a, err := db.GetAnalysis(ctx, args[0])
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if a == nil {
		return fmt.Errorf("analysis not found: %s", args[0])
	}

	return output.Output(outputFmt, a)
}

func runHistoryStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	db, err := requireHistory(appConfig)
	if err != nil {
		return err
	}
	defer db.Close()

	since, err := sinceFlag(historySince)
	if err != nil {
		return err
	}

	stats, err := db.GetStats(ctx, since)
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	return output.Output(outputFmt, stats)
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	db, err := requireHistory(appConfig)
	if err != nil {
		return err
	}
	defer db.Close()

	// Resolve prefixes so the user can delete what `history list` shows
	a, err := db.GetAnalysis(ctx, args[0])
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if a == nil {
		return fmt.Errorf("analysis not found: %s", args[0])
	}

	if err := db.DeleteAnalysis(ctx, a.ID); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted analysis %s\n", a.ID)
	return nil
}

func sinceFlag(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := parseDuration(s)
	if err != nil {
		return nil, fmt.Errorf("invalid duration: %w", err)
	}
	since := time.Now().Add(-d)
	return &since, nil
}

// parseDuration parses a human-readable duration like "7d", "2w", "1m"
func parseDuration(s string) (time.Duration, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid duration format")
	}

	unit := s[len(s)-1]
	valueStr := s[:len(s)-1]

	var value int
	if _, err := fmt.Sscanf(valueStr, "%d", &value); err != nil {
		return 0, fmt.Errorf("invalid duration value")
	}
	if value < 0 {
		return 0, fmt.Errorf("duration must not be negative")
	}

	switch unit {
	case 'h':
		return time.Duration(value) * time.Hour, nil
	case 'd':
		return time.Duration(value) * 24 * time.Hour, nil
	case 'w':
		return time.Duration(value) * 7 * 24 * time.Hour, nil
	case 'm':
		return time.Duration(value) * 30 * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unknown duration unit: %c (use h, d, w, or m)", unit)
	}
}
