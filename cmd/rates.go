package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Show current exchange rates",
	Long: `Fetch the exchange-rate table from the marketplace API and print
it. When the API is unreachable the built-in fallback rates are shown.`,
	RunE: runRates,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(ratesCmd)
}

func runRates(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadEnvironment()
	if err != nil {
		return err
	}

	queries, err := newQueries(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout)
	defer cancel()

	rates := loadRates(ctx, cfg, logger, queries)

	pairs := make([]string, 0, len(rates))
	for pair := range rates {
		pairs = append(pairs, pair)
	}
	sort.Strings(pairs)

	for _, pair := range pairs {
		fmt.Printf("%-10s %14.4f\n", pair, rates[pair])
	}
	return nil
}
