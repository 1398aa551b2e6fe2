package seed

import (
	"context"
	"encoding/json"
	"fmt"

	"bandiwala/internal/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// Beginner is satisfied by *pgxpool.Pool.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Apply upserts the whole file in one transaction.
func Apply(ctx context.Context, db Beginner, f *File) (Result, error) {
	var res Result

	tx, err := db.Begin(ctx)
	if err != nil {
		return res, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	owners := make(map[string]string, len(f.Users))
	for _, u := range f.Users {
		id, err := upsertUser(ctx, tx, u)
		if err != nil {
			return Result{}, fmt.Errorf("user %s: %w", u.Email, err)
		}
		owners[u.Email] = id
		res.Users++
	}

	for _, v := range f.Vendors {
		if _, err := tx.Exec(ctx, `
			INSERT INTO vendors (id, owner_id, name, location, image_url)
			VALUES ($1,$2,$3,$4,$5)
			ON CONFLICT (id) DO UPDATE
			SET owner_id = EXCLUDED.owner_id,
			    name = EXCLUDED.name,
			    location = EXCLUDED.location,
			    image_url = EXCLUDED.image_url
		`, v.ID, owners[v.OwnerEmail], v.Name, v.Location, v.ImageURL); err != nil {
			return Result{}, fmt.Errorf("vendor %s: %w", v.Name, err)
		}
		res.Vendors++

		for _, it := range v.Items {
			subs, err := json.Marshal(it.Subcategories)
			if err != nil {
				return Result{}, err
			}
			if _, err := tx.Exec(ctx, `
				INSERT INTO menu_items (id, vendor_id, name, description, image_url, is_available, subcategories)
				VALUES ($1,$2,$3,$4,$5,$6,$7)
				ON CONFLICT (id) DO UPDATE
				SET name = EXCLUDED.name,
				    description = EXCLUDED.description,
				    image_url = EXCLUDED.image_url,
				    is_available = EXCLUDED.is_available,
				    subcategories = EXCLUDED.subcategories
			`, it.ID, v.ID, it.Name, it.Description, it.ImageURL, it.IsAvailable(), subs); err != nil {
				return Result{}, fmt.Errorf("item %s/%s: %w", v.Name, it.Name, err)
			}
			res.Items++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Result{}, fmt.Errorf("commit: %w", err)
	}

	logger.GetLogger().Infow("seed applied", "users", res.Users, "vendors", res.Vendors, "items", res.Items)
	return res, nil
}

// upsertUser keeps the existing id and password hash when the email is
// already registered.
func upsertUser(ctx context.Context, tx pgx.Tx, u User) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	var id string
	err = tx.QueryRow(ctx, `
		INSERT INTO users (id, name, email, phone, password, role)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (email) DO UPDATE
		SET name = EXCLUDED.name,
		    phone = EXCLUDED.phone,
		    role = EXCLUDED.role
		RETURNING id
	`, uuid.New().String(), u.Name, u.Email, u.Phone, string(hash), u.Role).Scan(&id)
	return id, err
}
