package main

import (
	"context"
	"fmt"
	"os"

	"bandiwala/internal/config"
	"bandiwala/internal/db"
	"bandiwala/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var databaseURL string

// rootCmd is the base command for foodctl
var rootCmd = &cobra.Command{
	Use:   "foodctl",
	Short: "Operate a bandiwala deployment",
	Long: `foodctl seeds, inspects and smoke-tests a bandiwala backend.

Available subcommands:
  seed     - Load users, vendors and menu items from a YAML file
  inspect  - Show stored state (cart contents and price breakdown)
  cleanup  - Delete stale data
  smoke    - Exercise a running API end to end`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "Postgres DSN (defaults to DATABASE_URL)")

	rootCmd.AddCommand(seedCmd, inspectCmd, cleanupCmd, smokeCmd)
}

func main() {
	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the same environment the API uses; --database-url wins.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if databaseURL != "" {
		cfg.DatabaseURL = databaseURL
	}
	return cfg, nil
}

// dial opens the pool. Only commands that write seed data bootstrap the
// schema; read and cleanup commands run against an existing database.
var dial = func(ctx context.Context, dsn string, bootstrap bool) (*pgxpool.Pool, error) {
	if bootstrap {
		return db.ConnectPostgres(ctx, dsn)
	}
	return db.Connect(ctx, dsn)
}

func connect(ctx context.Context, bootstrap bool) (*pgxpool.Pool, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	pool, err := dial(ctx, cfg.DatabaseURL, bootstrap)
	if err != nil {
		return nil, nil, err
	}
	return pool, cfg, nil
}
