package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/partsdepot/partsdepot-backend/pkg/db/models"
)

// OrderLineItemDTO is one frozen line of a settled order.
type OrderLineItemDTO struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
	UnitPrice string    `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	LineTotal string    `json:"line_total"`
}

// OrderDTO is the order payload returned to clients.
type OrderDTO struct {
	ID         uuid.UUID          `json:"id"`
	Status     string             `json:"status"`
	Subtotal   string             `json:"subtotal"`
	Tax        string             `json:"tax"`
	Shipping   string             `json:"shipping"`
	Total      string             `json:"total"`
	PaymentRef *string            `json:"payment_ref,omitempty"`
	LineItems  []OrderLineItemDTO `json:"line_items"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// OrderListResult pages orders with an opaque continuation cursor.
type OrderListResult struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

// NewOrderDTO builds a DTO from the persisted model.
func NewOrderDTO(order *models.Order) *OrderDTO {
	items := make([]OrderLineItemDTO, 0, len(order.LineItems))
	for i := range order.LineItems {
		line := &order.LineItems[i]
		items = append(items, OrderLineItemDTO{
			ID:        line.ID,
			ProductID: line.ProductID,
			SKU:       line.SKU,
			Name:      line.Name,
			UnitPrice: line.UnitPrice.StringFixed(2),
			Quantity:  line.Quantity,
			LineTotal: line.LineTotal.StringFixed(2),
		})
	}
	return &OrderDTO{
		ID:         order.ID,
		Status:     string(order.Status),
		Subtotal:   order.Subtotal.StringFixed(2),
		Tax:        order.Tax.StringFixed(2),
		Shipping:   order.Shipping.StringFixed(2),
		Total:      order.Total.StringFixed(2),
		PaymentRef: order.PaymentRef,
		LineItems:  items,
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
	}
}
