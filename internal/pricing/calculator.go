package pricing

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidInput = errors.New("invalid input")

type Calculator struct {
	fees Fees
}

// NewCalculator rejects negative fees or tax rate.
func NewCalculator(fees Fees) (*Calculator, error) {
	if fees.PlatformFee < 0 || fees.DeliveryCharge < 0 || fees.TaxRate < 0 {
		return nil, fmt.Errorf("%w: negative fee configuration", ErrInvalidInput)
	}
	return &Calculator{fees: fees}, nil
}

func (c *Calculator) Fees() Fees {
	return c.fees
}

// Calculate builds a deterministic breakdown for a cart snapshot.
// PURE business logic: no I/O, no shared state.
func (c *Calculator) Calculate(items []LineItem) (Breakdown, error) {
	var subtotal float64

	for i, item := range items {
		if item.Quantity < 1 {
			return Breakdown{}, fmt.Errorf(
				"%w: item %d (%s) quantity %d",
				ErrInvalidInput, i, item.MenuItemID, item.Quantity,
			)
		}
		price := item.SelectedSubcategory.Price
		if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
			return Breakdown{}, fmt.Errorf(
				"%w: item %d (%s) unit price %v",
				ErrInvalidInput, i, item.MenuItemID, price,
			)
		}
		subtotal += price * float64(item.Quantity)
	}

	subtotal = Round(subtotal)
	taxable := Round(subtotal + c.fees.PlatformFee + c.fees.DeliveryCharge)
	tax := Round(taxable * c.fees.TaxRate)

	return Breakdown{
		Subtotal:       subtotal,
		PlatformFee:    Round(c.fees.PlatformFee),
		DeliveryCharge: Round(c.fees.DeliveryCharge),
		TaxableAmount:  taxable,
		Tax:            tax,
		Total:          Round(taxable + tax),
	}, nil
}

var defaultCalculator = &Calculator{fees: DefaultFees}

// Calculate prices items with DefaultFees.
func Calculate(items []LineItem) (Breakdown, error) {
	return defaultCalculator.Calculate(items)
}

// Round rounds a currency amount to 2 decimal places.
func Round(v float64) float64 {
	return math.Round(v*100) / 100
}
