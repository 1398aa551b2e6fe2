package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"bandiwala/internal/cart"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBPool matches the methods from *pgxpool.Pool that we use.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type PostgresRepository struct {
	db DBPool
}

func NewPostgresRepository(db DBPool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectOrder = `
	SELECT
		id,
		user_id,
		items,
		subtotal,
		platform_fee,
		delivery_charge,
		taxable_amount,
		tax,
		total,
		status,
		delivery_address,
		created_at,
		updated_at
	FROM orders
`

func (r *PostgresRepository) Create(ctx context.Context, o *Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("encode order items: %w", err)
	}

	b := o.Breakdown
	return r.db.QueryRow(ctx, `
		INSERT INTO orders (
			id,
			user_id,
			items,
			subtotal,
			platform_fee,
			delivery_charge,
			taxable_amount,
			tax,
			total,
			status,
			delivery_address
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING created_at, updated_at
	`,
		o.ID,
		o.UserID,
		items,
		b.Subtotal,
		b.PlatformFee,
		b.DeliveryCharge,
		b.TaxableAmount,
		b.Tax,
		b.Total,
		o.Status,
		o.DeliveryAddress,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*Order, error) {
	// orders.id is a UUID column
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	o, err := scanOrder(r.db.QueryRow(ctx, selectOrder+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*Order, error) {
	rows, err := r.db.Query(ctx, selectOrder+`
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []*Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, rows.Err()
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id, from, to string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}

	cmd, err := r.db.Exec(ctx, `
		UPDATE orders
		SET status = $3,
		    updated_at = now()
		WHERE id = $1
		  AND status = $2
	`, id, from, to)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrStatusConflict
	}
	return nil
}

func scanOrder(row pgx.Row) (*Order, error) {
	var (
		o     Order
		items []byte
	)
	if err := row.Scan(
		&o.ID,
		&o.UserID,
		&items,
		&o.Breakdown.Subtotal,
		&o.Breakdown.PlatformFee,
		&o.Breakdown.DeliveryCharge,
		&o.Breakdown.TaxableAmount,
		&o.Breakdown.Tax,
		&o.Breakdown.Total,
		&o.Status,
		&o.DeliveryAddress,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return nil, err
	}

	o.Items = []cart.Item{}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode items for order %s: %w", o.ID, err)
	}
	return &o, nil
}
