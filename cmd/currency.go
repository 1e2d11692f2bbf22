package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RakanDouli/souq-client/internal/currency"
	"github.com/RakanDouli/souq-client/pkg/prefs"
)

//nolint:gochecknoglobals // Cobra boilerplate
var currencyCmd = &cobra.Command{
	Use:   "currency [USD|EUR|SYP]",
	Short: "Show or set the display currency",
	Long: `Without an argument, prints the current display currency. With one,
saves it as the preferred display currency for future commands.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCurrency,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(currencyCmd)
}

func runCurrency(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadEnvironment()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		fmt.Println(displayCurrency(cfg, logger))
		return nil
	}

	code := args[0]
	switch code {
	case currency.USD, currency.EUR, currency.SYP:
	default:
		return fmt.Errorf("unsupported currency %q (use USD, EUR, or SYP)", code)
	}

	store, err := prefs.Open(cfg.PrefsPath)
	if err != nil {
		return fmt.Errorf("open prefs: %w", err)
	}
	err = store.Set(prefs.KeyDisplayCurrency, code)
	if err != nil {
		return fmt.Errorf("save preference: %w", err)
	}

	fmt.Printf("Display currency set to %s\n", code)
	return nil
}
