package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/perfume-finder/internal/database"
	"github.com/vijay-prabhu/perfume-finder/internal/output"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show quiz statistics",
	Long: `Display aggregate statistics about quiz submissions.

Examples:
  perfume stats             # Overall stats
  perfume stats --since=7d  # Stats for last 7 days
  perfume stats --recent=5  # Also list the 5 latest submissions`,
	RunE: runStats,
}

var (
	statsSince  string
	statsRecent int
)

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&statsSince, "since", "", "Time period (e.g., 7d, 2w, 1m)")
	statsCmd.Flags().IntVar(&statsRecent, "recent", 0, "Number of latest submissions to list")
}

// statsReport is the JSON shape of stats with recent submissions
type statsReport struct {
	Stats  *database.Stats       `json:"stats"`
	Recent []database.Submission `json:"recent"`
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	// Parse time filter
	var since *time.Time
	if statsSince != "" {
		duration, err := parseDuration(statsSince)
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}
		sinceTime := time.Now().Add(-duration)
		since = &sinceTime
	}

	stats, err := db.GetStats(ctx, since)
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	if statsRecent <= 0 {
		return output.Output(outputFmt, stats)
	}

	recent, err := db.ListSubmissions(ctx, database.ListOptions{Since: since, Limit: statsRecent})
	if err != nil {
		return fmt.Errorf("failed to list submissions: %w", err)
	}

	if outputFmt == "json" {
		return output.JSON(statsReport{Stats: stats, Recent: recent})
	}

	if err := output.Table(stats); err != nil {
		return err
	}
	fmt.Println()
	return output.Table(recent)
}

// parseDuration parses a human-readable duration like "7d", "2w", "1m"
func parseDuration(s string) (time.Duration, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid duration format")
	}

	unit := s[len(s)-1]
	value, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid duration value")
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
