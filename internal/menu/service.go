package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotOwner        = errors.New("vendor not owned by user")
	ErrStorageDisabled = errors.New("image storage not configured")
)

type Storage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

type Service struct {
	repo    Repository
	storage Storage
}

func NewService(repo Repository, storage Storage) *Service {
	return &Service{repo: repo, storage: storage}
}

// --------------------------------------------------
// Vendors
// --------------------------------------------------

func (s *Service) CreateVendor(ctx context.Context, ownerID, name, location string) (*Vendor, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(location) == "" {
		return nil, errors.New("name and location are required")
	}

	v := &Vendor{
		OwnerID:  ownerID,
		Name:     strings.TrimSpace(name),
		Location: strings.TrimSpace(location),
	}
	if err := s.repo.CreateVendor(ctx, v); err != nil {
		return nil, fmt.Errorf("create vendor: %w", err)
	}
	return v, nil
}

func (s *Service) ListVendors(ctx context.Context) ([]Vendor, error) {
	return s.repo.ListVendors(ctx)
}

func (s *Service) GetVendorMenu(ctx context.Context, vendorID string) (*VendorMenu, error) {
	v, err := s.repo.GetVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListItemsByVendor(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	return &VendorMenu{Vendor: *v, Items: items}, nil
}

// --------------------------------------------------
// Menu items
// --------------------------------------------------

// GetMenuItem is the lookup the cart uses to resolve prices.
func (s *Service) GetMenuItem(ctx context.Context, id string) (*MenuItem, error) {
	return s.repo.GetItem(ctx, id)
}

func (s *Service) CreateMenuItem(ctx context.Context, userID string, item *MenuItem) error {
	if err := s.checkOwner(ctx, item.VendorID, userID); err != nil {
		return err
	}
	if err := ValidateMenuItem(item); err != nil {
		return err
	}
	return s.repo.CreateItem(ctx, item)
}

// UploadItemImage stores the image and saves its public URL on the item.
func (s *Service) UploadItemImage(
	ctx context.Context,
	userID string,
	itemID string,
	body io.Reader,
	filename string,
) (string, error) {

	if s.storage == nil {
		return "", ErrStorageDisabled
	}

	contentType, err := ValidateImageExtension(filename)
	if err != nil {
		return "", err
	}

	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return "", err
	}
	if err := s.checkOwner(ctx, item.VendorID, userID); err != nil {
		return "", err
	}

	key := fmt.Sprintf(
		"menu-items/%s/%s%s",
		item.ID,
		uuid.New().String(),
		strings.ToLower(filepath.Ext(filename)),
	)

	url, err := s.storage.Upload(ctx, key, body, contentType)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	if err := s.repo.SetItemImage(ctx, item.ID, url); err != nil {
		return "", err
	}
	return url, nil
}

func (s *Service) checkOwner(ctx context.Context, vendorID, userID string) error {
	v, err := s.repo.GetVendor(ctx, vendorID)
	if err != nil {
		return err
	}
	if v.OwnerID != userID {
		return ErrNotOwner
	}
	return nil
}
