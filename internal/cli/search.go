package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/perfume-finder/internal/output"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search perfumes",
	Long: `Search perfumes by name, brand, description or note.

Examples:
  perfume search vanilla
  perfume search "tom ford"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	return output.Output(outputFmt, cat.Search(strings.Join(args, " ")))
}
