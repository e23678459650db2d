package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/perfume-finder/internal/catalog"
	"github.com/vijay-prabhu/perfume-finder/internal/output"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List perfumes",
	Long: `List catalog perfumes with optional filters.

Examples:
  perfume list                       # List all perfumes
  perfume list --gender=female       # Female and unisex perfumes
  perfume list --brand="Tom Ford"    # One brand
  perfume list --max-price=1000      # Up to a price
  perfume list -o json               # Output as JSON`,
	RunE: runList,
}

var (
	listGender   string
	listBrand    string
	listMaxPrice float64
	listLimit    int
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listGender, "gender", "", "Filter by gender (male, female, unisex)")
	listCmd.Flags().StringVar(&listBrand, "brand", "", "Filter by brand")
	listCmd.Flags().Float64Var(&listMaxPrice, "max-price", 0, "Maximum price")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum number of results")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	opts, err := buildListOptions(listGender, listBrand, listMaxPrice, listLimit)
	if err != nil {
		return err
	}

	return output.Output(outputFmt, cat.List(opts))
}

func buildListOptions(gender, brand string, maxPrice float64, limit int) (catalog.ListOptions, error) {
	opts := catalog.ListOptions{Limit: limit}

	if gender != "" {
		g := catalog.Gender(strings.ToLower(gender))
		if !g.Valid() {
			return opts, fmt.Errorf("invalid gender %q (use male, female or unisex)", gender)
		}
		opts.Gender = &g
	}
	if brand != "" {
		opts.Brand = &brand
	}
	if maxPrice > 0 {
		opts.MaxPrice = &maxPrice
	}

	return opts, nil
}
