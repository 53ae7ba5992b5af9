package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/partsdepot/partsdepot-backend/pkg/db/models"
)

// CartLineDTO is one rendered cart line. Price fields carry the product's
// current catalog price, not a frozen one; freezing happens at checkout.
type CartLineDTO struct {
	ID           uuid.UUID `json:"id"`
	ProductID    uuid.UUID `json:"product_id"`
	SKU          string    `json:"sku"`
	Name         string    `json:"name"`
	UnitPrice    string    `json:"unit_price"`
	Quantity     int       `json:"quantity"`
	LineTotal    string    `json:"line_total"`
	AvailableQty int       `json:"available_qty"`
	IsActive     bool      `json:"is_active"`
}

// CartDTO is the full cart payload returned by every cart operation, so the
// client always holds a consistent post-mutation snapshot.
type CartDTO struct {
	Items     []CartLineDTO `json:"items"`
	ItemCount int           `json:"item_count"`
	Subtotal  string        `json:"subtotal"`
	Tax       string        `json:"tax"`
	Shipping  string        `json:"shipping"`
	Total     string        `json:"total"`
}

// NewCartDTO renders lines plus derived totals into the client payload.
func NewCartDTO(lines []models.CartItem) *CartDTO {
	totals := ComputeTotals(lines)

	items := make([]CartLineDTO, 0, len(lines))
	for i := range lines {
		line := &lines[i]
		if line.Product == nil {
			continue
		}
		lineTotal := line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2)
		items = append(items, CartLineDTO{
			ID:           line.ID,
			ProductID:    line.ProductID,
			SKU:          line.Product.SKU,
			Name:         line.Product.Name,
			UnitPrice:    line.Product.Price.StringFixed(2),
			Quantity:     line.Quantity,
			LineTotal:    lineTotal.StringFixed(2),
			AvailableQty: line.Product.AvailableQty,
			IsActive:     line.Product.IsActive,
		})
	}

	return &CartDTO{
		Items:     items,
		ItemCount: totals.ItemCount,
		Subtotal:  totals.Subtotal.StringFixed(2),
		Tax:       totals.Tax.StringFixed(2),
		Shipping:  totals.Shipping.StringFixed(2),
		Total:     totals.Total.StringFixed(2),
	}
}
