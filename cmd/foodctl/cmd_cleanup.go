package main

import (
	"fmt"
	"time"

	"bandiwala/internal/cart"
	"bandiwala/internal/logger"

	"github.com/spf13/cobra"
)

var cartMaxAge time.Duration

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete stale data",
}

// cleanupCartsCmd drops cart lines nobody touched for a while
var cleanupCartsCmd = &cobra.Command{
	Use:   "carts",
	Short: "Delete cart lines not updated within --older-than",
	RunE:  runCleanupCarts,
}

func init() {
	cleanupCartsCmd.Flags().DurationVar(&cartMaxAge, "older-than", 30*24*time.Hour, "minimum age of a cart line to delete")

	cleanupCmd.AddCommand(cleanupCartsCmd)
}

func runCleanupCarts(cmd *cobra.Command, _ []string) error {
	if cartMaxAge <= 0 {
		return fmt.Errorf("--older-than must be positive, got %s", cartMaxAge)
	}

	ctx := cmd.Context()
	pool, _, err := connect(ctx, false)
	if err != nil {
		return err
	}
	defer pool.Close()

	cutoff := time.Now().Add(-cartMaxAge)
	n, err := cart.NewPostgresRepository(pool).DeleteStale(ctx, cutoff)
	if err != nil {
		return err
	}

	logger.GetLogger().Infow("stale cart lines deleted", "count", n, "cutoff", cutoff)
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %d cart lines older than %s\n", n, cartMaxAge)
	return nil
}
