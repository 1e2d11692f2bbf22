package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/RakanDouli/souq-client/internal/tracking"
	"github.com/RakanDouli/souq-client/pkg/config"
)

//nolint:gochecknoglobals // Cobra boilerplate
var listingCmd = &cobra.Command{
	Use:   "listing <id>",
	Short: "Show a listing's details",
	Long: `Fetch one listing and print its full details, including the
seller-defined attribute map. The view is recorded unless --no-track
is given; tracking is best-effort and never fails the read.`,
	Args: cobra.ExactArgs(1),
	RunE: runListing,
}

//nolint:gochecknoglobals // Cobra flags
var listingNoTrack bool

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(listingCmd)
	listingCmd.Flags().BoolVar(&listingNoTrack, "no-track", false, "Do not record this view")
}

func runListing(cmd *cobra.Command, args []string) error {
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

	listing, err := service.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("get listing: %w", err)
	}

	display := displayCurrency(cfg, logger)
	rates := loadRates(ctx, cfg, logger, queries)

	fmt.Printf("%s\n", listing.Title)
	fmt.Printf("  ID:       %s\n", listing.ID)
	fmt.Printf("  Price:    %s\n", renderPrice(listing.PriceMinor, listing.Currency, display, rates))
	fmt.Printf("  Location: %s\n", listing.Location)
	fmt.Printf("  Category: %s\n", listing.CategoryID)

	if len(listing.Specs) > 0 {
		fmt.Println("  Specs:")
		keys := make([]string, 0, len(listing.Specs))
		for k := range listing.Specs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			spec := listing.Specs[k]
			fmt.Printf("    %-20s %s\n", spec.Label+":", spec.Value)
		}
	}

	if !listingNoTrack {
		recordView(ctx, cfg, logger, listing.ID)
	}
	return nil
}

// recordView records the view through the configured tracker. Failures
// are logged, never returned; tracking must not break reads.
func recordView(ctx context.Context, cfg *config.Config, logger *zap.Logger, listingID string) {
	tracker, err := tracking.FromConfig(cfg, logger)
	if err != nil {
		logger.Warn("tracker-unavailable", zap.Error(err))
		return
	}
	defer func() {
		_ = tracker.Close()
	}()

	if err := tracker.RecordView(ctx, listingID); err != nil {
		logger.Warn("view-recording-failed", zap.Error(err))
	}
}
