package main

import (
	"fmt"

	"bandiwala/internal/seed"

	"github.com/spf13/cobra"
)

var seedFile string

// seedCmd loads a YAML seed file
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Upsert users, vendors and menu items from YAML",
	Long: `Reads a seed file and upserts every record in one transaction.
Re-running the same file is safe: IDs are derived from vendor and item names.

Example:
  foodctl seed --file seed.yaml`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "seed.yaml", "seed file to load")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	f, err := seed.ReadFile(seedFile)
	if err != nil {
		return fmt.Errorf("read %s: %w", seedFile, err)
	}

	ctx := cmd.Context()
	pool, _, err := connect(ctx, true)
	if err != nil {
		return err
	}
	defer pool.Close()

	res, err := seed.Apply(ctx, pool, f)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users, %d vendors, %d menu items\n", res.Users, res.Vendors, res.Items)
	return nil
}
