package cart

import (
	"time"

	"bandiwala/internal/pricing"
)

// Item is one cart line. A user can hold the same dish in several
// subcategories, so a line is keyed by (MenuItemID, subcategory title).
type Item struct {
	MenuItemID          string              `json:"menuItemId"`
	Name                string              `json:"name"`
	Quantity            int                 `json:"quantity"`
	SelectedSubcategory pricing.Subcategory `json:"selectedSubcategory"`
	UpdatedAt           time.Time           `json:"updatedAt"`
}

func (i Item) LineItem() pricing.LineItem {
	return pricing.LineItem{
		MenuItemID:          i.MenuItemID,
		Quantity:            i.Quantity,
		SelectedSubcategory: i.SelectedSubcategory,
	}
}

// View is what GET /cart returns.
type View struct {
	UserID    string            `json:"userId"`
	Items     []Item            `json:"items"`
	Breakdown pricing.Breakdown `json:"breakdown"`
}

func (v *View) IsEmpty() bool {
	return len(v.Items) == 0
}

// LineItems converts the cart to calculator input, preserving order.
func LineItems(items []Item) []pricing.LineItem {
	out := make([]pricing.LineItem, len(items))
	for i, it := range items {
		out[i] = it.LineItem()
	}
	return out
}
