package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RakanDouli/souq-client/internal/wishlist"
)

//nolint:gochecknoglobals // Cobra boilerplate
var wishlistCmd = &cobra.Command{
	Use:   "wishlist",
	Short: "Manage your wishlist",
	Long: `List the wishlist or toggle a listing's membership. Requires
SOUQ_AUTH_TOKEN to be set; wishlist operations are per-account.`,
}

//nolint:gochecknoglobals // Cobra boilerplate
var wishlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show current wishlist members",
	RunE:  runWishlistList,
}

//nolint:gochecknoglobals // Cobra boilerplate
var wishlistAddCmd = &cobra.Command{
	Use:   "add <listing-id>",
	Short: "Add a listing to the wishlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runWishlistAdd,
}

//nolint:gochecknoglobals // Cobra boilerplate
var wishlistRemoveCmd = &cobra.Command{
	Use:   "remove <listing-id>",
	Short: "Remove a listing from the wishlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runWishlistRemove,
}

//nolint:gochecknoglobals // Cobra boilerplate
var wishlistToggleCmd = &cobra.Command{
	Use:   "toggle <listing-id>",
	Short: "Toggle a listing's wishlist membership",
	Args:  cobra.ExactArgs(1),
	RunE:  runWishlistToggle,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(wishlistCmd)
	wishlistCmd.AddCommand(wishlistListCmd)
	wishlistCmd.AddCommand(wishlistAddCmd)
	wishlistCmd.AddCommand(wishlistRemoveCmd)
	wishlistCmd.AddCommand(wishlistToggleCmd)
}

func openWishlist(ctx context.Context) (*wishlist.Store, context.Context, context.CancelFunc, error) {
	cfg, logger, err := loadEnvironment()
	if err != nil {
		return nil, nil, nil, err
	}

	queries, err := newQueries(cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}

	store := wishlist.New(&wishlist.Config{
		Queries: queries,
		TTL:     cfg.WishlistTTL,
		Logger:  logger,
	})

	ctx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	err = store.LoadAll(ctx)
	if err != nil {
		cancel()
		return nil, nil, nil, fmt.Errorf("load wishlist: %w", err)
	}

	return store, ctx, cancel, nil
}

func runWishlistList(cmd *cobra.Command, args []string) error {
	store, _, cancel, err := openWishlist(cmd.Context())
	if err != nil {
		return err
	}
	defer cancel()

	members := store.Members()
	if len(members) == 0 {
		fmt.Println("Wishlist is empty.")
		return nil
	}

	fmt.Printf("%d listings on the wishlist:\n", len(members))
	for _, id := range members {
		fmt.Printf("  %s\n", id)
	}
	return nil
}

func runWishlistAdd(cmd *cobra.Command, args []string) error {
	store, ctx, cancel, err := openWishlist(cmd.Context())
	if err != nil {
		return err
	}
	defer cancel()

	err = store.Add(ctx, args[0])
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	fmt.Printf("Added %s\n", args[0])
	return nil
}

func runWishlistRemove(cmd *cobra.Command, args []string) error {
	store, ctx, cancel, err := openWishlist(cmd.Context())
	if err != nil {
		return err
	}
	defer cancel()

	err = store.Remove(ctx, args[0])
	if err != nil {
		return fmt.Errorf("remove: %w", err)
	}
	fmt.Printf("Removed %s\n", args[0])
	return nil
}

func runWishlistToggle(cmd *cobra.Command, args []string) error {
	store, ctx, cancel, err := openWishlist(cmd.Context())
	if err != nil {
		return err
	}
	defer cancel()

	err = store.Toggle(ctx, args[0])
	if err != nil {
		return fmt.Errorf("toggle: %w", err)
	}

	if store.IsMember(args[0]) {
		fmt.Printf("Added %s\n", args[0])
	} else {
		fmt.Printf("Removed %s\n", args[0])
	}
	return nil
}
