package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBPool matches the methods from *pgxpool.Pool that we use.
type DBPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

type PostgresRepository struct {
	db DBPool
}

func NewPostgresRepository(db DBPool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListItems(ctx context.Context, userID string) ([]Item, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			menu_item_id,
			item_name,
			quantity,
			subcategory_title,
			subcategory_quantity,
			unit_price,
			updated_at
		FROM cart_items
		WHERE user_id = $1
		ORDER BY created_at, menu_item_id, subcategory_title
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(
			&it.MenuItemID,
			&it.Name,
			&it.Quantity,
			&it.SelectedSubcategory.Title,
			&it.SelectedSubcategory.Quantity,
			&it.SelectedSubcategory.Price,
			&it.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	return items, rows.Err()
}

func (r *PostgresRepository) UpsertItem(ctx context.Context, userID string, item Item) error {
	return r.upsert(ctx, userID, item, `quantity = EXCLUDED.quantity`)
}

func (r *PostgresRepository) AddQuantity(ctx context.Context, userID string, item Item) error {
	return r.upsert(ctx, userID, item, `quantity = cart_items.quantity + EXCLUDED.quantity`)
}

func (r *PostgresRepository) upsert(ctx context.Context, userID string, item Item, quantityClause string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO cart_items (
			user_id,
			menu_item_id,
			item_name,
			quantity,
			subcategory_title,
			subcategory_quantity,
			unit_price
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, menu_item_id, subcategory_title)
		DO UPDATE SET
			item_name = EXCLUDED.item_name,
			`+quantityClause+`,
			subcategory_quantity = EXCLUDED.subcategory_quantity,
			unit_price = EXCLUDED.unit_price,
			updated_at = now()
	`,
		userID,
		item.MenuItemID,
		item.Name,
		item.Quantity,
		item.SelectedSubcategory.Title,
		item.SelectedSubcategory.Quantity,
		item.SelectedSubcategory.Price,
	)
	return err
}

func (r *PostgresRepository) DeleteItem(ctx context.Context, userID, menuItemID, subcategory string) (bool, error) {
	// menu_item_id is a UUID column; anything else cannot match a line
	if _, err := uuid.Parse(menuItemID); err != nil {
		return false, nil
	}

	cmd, err := r.db.Exec(ctx, `
		DELETE FROM cart_items
		WHERE user_id = $1
		  AND menu_item_id = $2
		  AND subcategory_title = $3
	`, userID, menuItemID, subcategory)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

// DeleteLines runs in one transaction so a checkout removes all of the
// lines it read or none of them.
func (r *PostgresRepository) DeleteLines(ctx context.Context, userID string, items []Item) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var removed int64
	for _, it := range items {
		cmd, err := tx.Exec(ctx, `
			DELETE FROM cart_items
			WHERE user_id = $1
			  AND menu_item_id = $2
			  AND subcategory_title = $3
			  AND quantity = $4
			  AND updated_at = $5
		`, userID, it.MenuItemID, it.SelectedSubcategory.Title, it.Quantity, it.UpdatedAt)
		if err != nil {
			return 0, err
		}
		removed += cmd.RowsAffected()
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return removed, nil
}

func (r *PostgresRepository) Clear(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	return err
}

func (r *PostgresRepository) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	cmd, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE updated_at < $1`, before)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
