package cart

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/partsdepot/partsdepot-backend/pkg/db/models"
)

func lineWithPrice(price string, qty int) models.CartItem {
	return models.CartItem{
		Quantity: qty,
		Product: &models.Product{
			Price:    decimal.RequireFromString(price),
			IsActive: true,
		},
	}
}

func TestComputeTotalsEmptyCart(t *testing.T) {
	totals := ComputeTotals(nil)
	if totals.ItemCount != 0 {
		t.Fatalf("expected 0 items, got %d", totals.ItemCount)
	}
	if !totals.Subtotal.IsZero() || !totals.Tax.IsZero() || !totals.Shipping.IsZero() || !totals.Total.IsZero() {
		t.Fatalf("expected all-zero totals, got %+v", totals)
	}
}

func TestComputeTotalsWithTaxAndShipping(t *testing.T) {
	totals := ComputeTotals([]models.CartItem{lineWithPrice("25.99", 2)})

	if got := totals.Subtotal.StringFixed(2); got != "51.98" {
		t.Fatalf("subtotal: expected 51.98, got %s", got)
	}
	if got := totals.Tax.StringFixed(2); got != "4.16" {
		t.Fatalf("tax: expected 4.16, got %s", got)
	}
	if got := totals.Shipping.StringFixed(2); got != "9.99" {
		t.Fatalf("shipping: expected 9.99, got %s", got)
	}
	if got := totals.Total.StringFixed(2); got != "66.13" {
		t.Fatalf("total: expected 66.13, got %s", got)
	}
	if totals.ItemCount != 2 {
		t.Fatalf("expected 2 items, got %d", totals.ItemCount)
	}
}

func TestComputeTotalsFreeShippingBoundary(t *testing.T) {
	cases := []struct {
		name     string
		price    string
		shipping string
	}{
		{name: "just below threshold", price: "74.99", shipping: "9.99"},
		{name: "at threshold", price: "75.00", shipping: "0.00"},
		{name: "above threshold", price: "75.01", shipping: "0.00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			totals := ComputeTotals([]models.CartItem{lineWithPrice(tc.price, 1)})
			if got := totals.Shipping.StringFixed(2); got != tc.shipping {
				t.Fatalf("shipping: expected %s, got %s", tc.shipping, got)
			}
		})
	}
}

func TestComputeTotalsSkipsDanglingLines(t *testing.T) {
	lines := []models.CartItem{
		lineWithPrice("10.00", 1),
		{Quantity: 3}, // product row gone, line must not count
	}
	totals := ComputeTotals(lines)
	if got := totals.Subtotal.StringFixed(2); got != "10.00" {
		t.Fatalf("subtotal: expected 10.00, got %s", got)
	}
	if totals.ItemCount != 1 {
		t.Fatalf("expected 1 item, got %d", totals.ItemCount)
	}
}
