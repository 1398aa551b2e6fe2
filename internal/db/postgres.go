package db

import (
	"context"
	"fmt"
	"time"

	"bandiwala/internal/logger"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Execer is the part of *pgxpool.Pool the schema bootstrap needs.
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// ConnectPostgres opens a pool, pings it and bootstraps the schema.
func ConnectPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := Connect(ctx, dsn)
	if err != nil {
		return nil, err
	}

	if err := InitSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return pool, nil
}

// Connect opens a pool and pings it without touching the schema.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres connection failed: %w", err)
	}

	log := logger.GetLogger()
	log.Infow("connected to postgres", "host", config.ConnConfig.Host, "database", config.ConnConfig.Database)

	return pool, nil
}

// schema is applied in order; every statement is idempotent.
var schema = []struct {
	name string
	sql  string
}{
	// -------------------------------
	// USERS
	// -------------------------------
	{"users", `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			phone VARCHAR(32) NOT NULL DEFAULT '',
			password VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'CUSTOMER',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`},

	// -------------------------------
	// VENDORS + MENU
	// -------------------------------
	{"vendors", `
		CREATE TABLE IF NOT EXISTS vendors (
			id UUID PRIMARY KEY,
			owner_id UUID NOT NULL REFERENCES users(id),
			name VARCHAR(255) NOT NULL,
			location VARCHAR(255) NOT NULL DEFAULT '',
			image_url VARCHAR(500) NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`},
	{"menu_items", `
		CREATE TABLE IF NOT EXISTS menu_items (
			id UUID PRIMARY KEY,
			vendor_id UUID NOT NULL REFERENCES vendors(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			image_url VARCHAR(500) NOT NULL DEFAULT '',
			is_available BOOLEAN NOT NULL DEFAULT TRUE,
			subcategories JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`},
	{"menu_items_vendor_idx", `
		CREATE INDEX IF NOT EXISTS menu_items_vendor_idx ON menu_items (vendor_id)
	`},

	// -------------------------------
	// CART
	// -------------------------------
	{"cart_items", `
		CREATE TABLE IF NOT EXISTS cart_items (
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			menu_item_id UUID NOT NULL REFERENCES menu_items(id) ON DELETE CASCADE,
			item_name VARCHAR(255) NOT NULL,
			quantity INTEGER NOT NULL CHECK (quantity >= 1),
			subcategory_title VARCHAR(100) NOT NULL,
			subcategory_quantity VARCHAR(100) NOT NULL DEFAULT '',
			unit_price NUMERIC(10,2) NOT NULL CHECK (unit_price >= 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (user_id, menu_item_id, subcategory_title)
		)
	`},

	// -------------------------------
	// ORDERS
	// -------------------------------
	{"orders", `
		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id),
			items JSONB NOT NULL,
			subtotal NUMERIC(10,2) NOT NULL,
			platform_fee NUMERIC(10,2) NOT NULL,
			delivery_charge NUMERIC(10,2) NOT NULL,
			taxable_amount NUMERIC(10,2) NOT NULL,
			tax NUMERIC(10,2) NOT NULL,
			total NUMERIC(10,2) NOT NULL,
			status VARCHAR(32) NOT NULL DEFAULT 'PLACED',
			delivery_address TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`},
	{"orders_user_idx", `
		CREATE INDEX IF NOT EXISTS orders_user_idx ON orders (user_id, created_at DESC)
	`},
}

// InitSchema creates or updates the database schema.
func InitSchema(ctx context.Context, db Execer) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt.sql); err != nil {
			return fmt.Errorf("create %s: %w", stmt.name, err)
		}
	}

	logger.GetLogger().Infow("schema initialized", "statements", len(schema))
	return nil
}
