package menu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

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

// --------------------------------------------------
// VENDORS
// --------------------------------------------------

func (r *PostgresRepository) CreateVendor(ctx context.Context, v *Vendor) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}

	return r.db.QueryRow(ctx, `
		INSERT INTO vendors (id, owner_id, name, location, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, v.ID, v.OwnerID, v.Name, v.Location, v.ImageURL).Scan(&v.CreatedAt)
}

func (r *PostgresRepository) ListVendors(ctx context.Context) ([]Vendor, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, owner_id, name, location, image_url, created_at
		FROM vendors
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vendors := []Vendor{}
	for rows.Next() {
		var v Vendor
		if err := rows.Scan(
			&v.ID,
			&v.OwnerID,
			&v.Name,
			&v.Location,
			&v.ImageURL,
			&v.CreatedAt,
		); err != nil {
			return nil, err
		}
		vendors = append(vendors, v)
	}

	return vendors, rows.Err()
}

func (r *PostgresRepository) GetVendor(ctx context.Context, id string) (*Vendor, error) {
	if !isUUID(id) {
		return nil, ErrVendorNotFound
	}

	var v Vendor
	err := r.db.QueryRow(ctx, `
		SELECT id, owner_id, name, location, image_url, created_at
		FROM vendors
		WHERE id = $1
	`, id).Scan(&v.ID, &v.OwnerID, &v.Name, &v.Location, &v.ImageURL, &v.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVendorNotFound
		}
		return nil, err
	}
	return &v, nil
}

// --------------------------------------------------
// MENU ITEMS
// --------------------------------------------------

func (r *PostgresRepository) CreateItem(ctx context.Context, item *MenuItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	subs, err := json.Marshal(item.Subcategories)
	if err != nil {
		return fmt.Errorf("encode subcategories: %w", err)
	}

	return r.db.QueryRow(ctx, `
		INSERT INTO menu_items (
			id,
			vendor_id,
			name,
			description,
			image_url,
			is_available,
			subcategories
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`,
		item.ID,
		item.VendorID,
		item.Name,
		item.Description,
		item.ImageURL,
		item.IsAvailable,
		subs,
	).Scan(&item.CreatedAt)
}

func (r *PostgresRepository) ListItemsByVendor(ctx context.Context, vendorID string) ([]MenuItem, error) {
	if !isUUID(vendorID) {
		return []MenuItem{}, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, vendor_id, name, description, image_url, is_available, subcategories, created_at
		FROM menu_items
		WHERE vendor_id = $1
		ORDER BY name
	`, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []MenuItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	return items, rows.Err()
}

func (r *PostgresRepository) GetItem(ctx context.Context, id string) (*MenuItem, error) {
	if !isUUID(id) {
		return nil, ErrItemNotFound
	}

	row := r.db.QueryRow(ctx, `
		SELECT id, vendor_id, name, description, image_url, is_available, subcategories, created_at
		FROM menu_items
		WHERE id = $1
	`, id)

	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (r *PostgresRepository) SetItemImage(ctx context.Context, id string, url string) error {
	if !isUUID(id) {
		return ErrItemNotFound
	}

	cmd, err := r.db.Exec(ctx, `
		UPDATE menu_items
		SET image_url = $1
		WHERE id = $2
	`, url, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

func scanItem(row pgx.Row) (*MenuItem, error) {
	var (
		item MenuItem
		subs []byte
	)
	if err := row.Scan(
		&item.ID,
		&item.VendorID,
		&item.Name,
		&item.Description,
		&item.ImageURL,
		&item.IsAvailable,
		&subs,
		&item.CreatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(subs, &item.Subcategories); err != nil {
		return nil, fmt.Errorf("decode subcategories for %s: %w", item.ID, err)
	}
	return &item, nil
}

// isUUID guards the UUID id columns; postgres rejects anything else with 22P02.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
