package menu

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	ErrInvalidItem  = errors.New("invalid menu item")
	ErrInvalidImage = errors.New("invalid image")
)

var allowedImageExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// ValidateImageExtension returns the content type for an allowed image file.
func ValidateImageExtension(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	if ext == "" {
		return "", fmt.Errorf("%w: file extension missing", ErrInvalidImage)
	}

	contentType, ok := allowedImageExt[ext]
	if !ok {
		return "", fmt.Errorf("%w: file type %s not allowed", ErrInvalidImage, ext)
	}

	return contentType, nil
}

// ValidateMenuItem checks the fields a cart depends on.
func ValidateMenuItem(item *MenuItem) error {
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidItem)
	}
	if len(item.Subcategories) == 0 {
		return fmt.Errorf("%w: at least one subcategory is required", ErrInvalidItem)
	}

	seen := make(map[string]bool, len(item.Subcategories))
	for _, s := range item.Subcategories {
		if strings.TrimSpace(s.Title) == "" {
			return fmt.Errorf("%w: subcategory title is required", ErrInvalidItem)
		}
		if s.Price < 0 {
			return fmt.Errorf("%w: subcategory %q has negative price", ErrInvalidItem, s.Title)
		}
		if seen[s.Title] {
			return fmt.Errorf("%w: duplicate subcategory %q", ErrInvalidItem, s.Title)
		}
		seen[s.Title] = true
	}

	return nil
}
