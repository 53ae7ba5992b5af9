package product

import (
	"time"

	"github.com/google/uuid"

	"github.com/partsdepot/partsdepot-backend/pkg/db/models"
)

// ProductDTO represents the catalog payload returned to clients.
type ProductDTO struct {
	ID            uuid.UUID `json:"id"`
	SKU           string    `json:"sku"`
	Name          string    `json:"name"`
	Description   *string   `json:"description,omitempty"`
	Category      string    `json:"category"`
	Brand         *string   `json:"brand,omitempty"`
	Price         string    `json:"price"`
	OriginalPrice *string   `json:"original_price,omitempty"`
	AvailableQty  int       `json:"available_qty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProductSummary is the trimmed browse-listing shape.
type ProductSummary struct {
	ID            uuid.UUID `json:"id"`
	SKU           string    `json:"sku"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Brand         *string   `json:"brand,omitempty"`
	Price         string    `json:"price"`
	OriginalPrice *string   `json:"original_price,omitempty"`
	AvailableQty  int       `json:"available_qty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ProductListResult pages summaries with an opaque continuation cursor.
type ProductListResult struct {
	Products   []ProductSummary `json:"products"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

// NewProductDTO builds a DTO from the persisted model.
func NewProductDTO(p *models.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Description:  p.Description,
		Category:     string(p.Category),
		Brand:        p.Brand,
		Price:        p.Price.StringFixed(2),
		AvailableQty: p.AvailableQty,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.OriginalPrice != nil {
		original := p.OriginalPrice.StringFixed(2)
		dto.OriginalPrice = &original
	}
	return dto
}

func newProductSummary(p *models.Product) ProductSummary {
	summary := ProductSummary{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Category:     string(p.Category),
		Brand:        p.Brand,
		Price:        p.Price.StringFixed(2),
		AvailableQty: p.AvailableQty,
		CreatedAt:    p.CreatedAt,
	}
	if p.OriginalPrice != nil {
		original := p.OriginalPrice.StringFixed(2)
		summary.OriginalPrice = &original
	}
	return summary
}
