package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/perfume-finder/internal/output"
)

var submissionCmd = &cobra.Command{
	Use:   "submission <id>",
	Short: "Show one quiz submission",
	Long: `Show the stored answers of one quiz submission.

IDs are listed by 'perfume stats --recent'.

Examples:
  perfume submission 6f1c2a9e-8d4b-4c11-9a57-3e2f0b7d5c10
  perfume submission 6f1c2a9e-8d4b-4c11-9a57-3e2f0b7d5c10 -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runSubmission,
}

func init() {
	rootCmd.AddCommand(submissionCmd)
}

func runSubmission(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	s, err := db.GetSubmission(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get submission: %w", err)
	}
	if s == nil {
		return fmt.Errorf("submission not found: %s", args[0])
	}

	return output.Output(outputFmt, s)
}
