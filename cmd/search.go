package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RakanDouli/souq-client/internal/listings"
)

//nolint:gochecknoglobals // Cobra boilerplate
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search marketplace listings",
	Long: `Search listings by free text, category, and price range.
Prices are shown in your display currency (see 'souq-client currency').`,
	RunE: runSearch,
}

//nolint:gochecknoglobals // Cobra flags
var (
	searchQuery    string
	searchCategory string
	searchMinPrice int64
	searchMaxPrice int64
	searchSort     string
	searchLimit    int
)

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "Free-text query")
	searchCmd.Flags().StringVarP(&searchCategory, "category", "c", "", "Category ID")
	searchCmd.Flags().Int64Var(&searchMinPrice, "min-price", 0, "Minimum price in minor units")
	searchCmd.Flags().Int64Var(&searchMaxPrice, "max-price", 0, "Maximum price in minor units")
	searchCmd.Flags().StringVar(&searchSort, "sort", "", "Sort order (newest, price_asc, price_desc)")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "Maximum results")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadEnvironment()
	if err != nil {
		return err
	}

	queries, err := newQueries(cfg, logger)
	if err != nil {
		return err
	}
	service, err := newListingsService(cfg, logger, queries)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout)
	defer cancel()

	results, err := service.Search(ctx, listings.SearchFilter{
		Query:         searchQuery,
		CategoryID:    searchCategory,
		MinPriceMinor: searchMinPrice,
		MaxPriceMinor: searchMaxPrice,
		Sort:          searchSort,
		Limit:         searchLimit,
	})
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No listings found.")
		return nil
	}

	display := displayCurrency(cfg, logger)
	rates := loadRates(ctx, cfg, logger, queries)

	fmt.Printf("Found %d listings:\n\n", len(results))
	for _, listing := range results {
		fmt.Printf("%-12s  %-40s  %12s  %s\n",
			listing.ID,
			truncate(listing.Title, 40),
			renderPrice(listing.PriceMinor, listing.Currency, display, rates),
			listing.Location)
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
