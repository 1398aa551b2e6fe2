package pricing

// Subcategory is the priced variant of a menu item chosen by the customer
// (for example "Half" / "250 ml").
type Subcategory struct {
	Title    string  `json:"title"`
	Quantity string  `json:"quantity"`
	Price    float64 `json:"price"`
}

// LineItem is one cart row fed to the calculator.
type LineItem struct {
	MenuItemID          string      `json:"menuItemId"`
	Quantity            int         `json:"quantity"`
	SelectedSubcategory Subcategory `json:"selectedSubcategory"`
}

// Breakdown is the display-ready price split of a cart snapshot.
// Every amount is rounded to 2 decimal places.
type Breakdown struct {
	Subtotal       float64 `json:"subtotal"`
	PlatformFee    float64 `json:"platformFee"`
	DeliveryCharge float64 `json:"deliveryCharge"`
	TaxableAmount  float64 `json:"taxableAmount"`
	Tax            float64 `json:"tax"`
	Total          float64 `json:"total"`
}

// Fees holds the flat per-order charges and the tax rate.
type Fees struct {
	PlatformFee    float64
	DeliveryCharge float64
	TaxRate        float64
}

// DefaultFees are the charges applied when nothing is configured.
var DefaultFees = Fees{
	PlatformFee:    5,
	DeliveryCharge: 20,
	TaxRate:        0.05,
}
