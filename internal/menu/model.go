package menu

import (
	"time"

	"bandiwala/internal/pricing"
)

// Vendor is a food stall or kitchen listed on the platform.
type Vendor struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MenuItem is a dish sold by a vendor. Price lives on its subcategories
// ("Half", "Full", "500 ml"), never on the item itself.
type MenuItem struct {
	ID            string                `json:"id"`
	VendorID      string                `json:"vendor_id"`
	Name          string                `json:"name"`
	Description   string                `json:"description,omitempty"`
	ImageURL      string                `json:"image_url,omitempty"`
	IsAvailable   bool                  `json:"is_available"`
	Subcategories []pricing.Subcategory `json:"subcategories"`
	CreatedAt     time.Time             `json:"created_at"`
}

// Subcategory looks up a priced variant by title.
func (m *MenuItem) Subcategory(title string) (pricing.Subcategory, bool) {
	for _, s := range m.Subcategories {
		if s.Title == title {
			return s, true
		}
	}
	return pricing.Subcategory{}, false
}

// VendorMenu is the public read model for GET /vendors/:id/menu.
type VendorMenu struct {
	Vendor Vendor     `json:"vendor"`
	Items  []MenuItem `json:"items"`
}
