package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "souq-client",
	Short: "Souq marketplace client",
	Long: `Client for the Souq Syria marketplace API.

Search listings, inspect listing details, manage your wishlist, and
convert prices between USD, EUR, and SYP. Remote queries are cached
locally; wishlist changes apply optimistically and roll back when the
server rejects them.

Run 'souq-client run' to start the daemon, which keeps exchange rates
fresh, follows the live listing feed, and serves metrics and health
endpoints.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
