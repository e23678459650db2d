package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/perfume-finder/internal/output"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show perfume details",
	Long: `Show full details of one perfume.

Examples:
  perfume show oud-wood
  perfume show aventus -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	perfume, ok := cat.Get(args[0])
	if !ok {
		return fmt.Errorf("perfume not found: %s", args[0])
	}

	return output.Output(outputFmt, perfume)
}
