package cart

import (
	"github.com/shopspring/decimal"

	"github.com/partsdepot/partsdepot-backend/pkg/db/models"
)

var (
	taxRate               = decimal.NewFromFloat(0.08)
	flatShipping          = decimal.NewFromFloat(9.99)
	freeShippingThreshold = decimal.NewFromInt(75)
)

// Totals is the derived money summary of a cart. Every amount is rounded to
// cents before the next amount is derived from it, so the arithmetic matches
// what the storefront renders line by line. With two-decimal unit prices a
// line total is already exact, so rounding per step yields the same cents as
// rounding once at the end.
type Totals struct {
	Subtotal  decimal.Decimal
	Tax       decimal.Decimal
	Shipping  decimal.Decimal
	Total     decimal.Decimal
	ItemCount int
}

// ComputeTotals derives the cart summary from lines with preloaded products.
// Shipping is waived once the subtotal reaches the free-shipping threshold;
// an empty cart ships for free as well.
func ComputeTotals(lines []models.CartItem) Totals {
	subtotal := decimal.Zero
	itemCount := 0
	for i := range lines {
		line := &lines[i]
		if line.Product == nil {
			continue
		}
		lineTotal := line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2)
		subtotal = subtotal.Add(lineTotal)
		itemCount += line.Quantity
	}
	subtotal = subtotal.Round(2)

	tax := subtotal.Mul(taxRate).Round(2)

	shipping := decimal.Zero
	if itemCount > 0 && subtotal.LessThan(freeShippingThreshold) {
		shipping = flatShipping
	}

	return Totals{
		Subtotal:  subtotal,
		Tax:       tax,
		Shipping:  shipping,
		Total:     subtotal.Add(tax).Add(shipping).Round(2),
		ItemCount: itemCount,
	}
}
