package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List marketplace categories",
	RunE:  runCategories,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, args []string) error {
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

	categories, err := service.Categories(ctx)
	if err != nil {
		return fmt.Errorf("categories: %w", err)
	}

	for _, category := range categories {
		fmt.Printf("%-12s  %-24s  %s\n", category.ID, category.Name, category.Slug)
	}
	return nil
}
