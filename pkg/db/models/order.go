package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/partsdepot/partsdepot-backend/pkg/enums"
)

// Order is a settled snapshot of a cart. Unlike cart lines, order line items
// freeze the unit price at checkout time.
type Order struct {
	ID         uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID     uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index:idx_orders_user"`
	Status     enums.OrderStatus `gorm:"column:status;not null;default:'pending'"`
	Subtotal   decimal.Decimal   `gorm:"column:subtotal;type:numeric(12,2);not null"`
	Tax        decimal.Decimal   `gorm:"column:tax;type:numeric(12,2);not null"`
	Shipping   decimal.Decimal   `gorm:"column:shipping;type:numeric(12,2);not null"`
	Total      decimal.Decimal   `gorm:"column:total;type:numeric(12,2);not null"`
	PaymentRef *string           `gorm:"column:payment_ref"`
	LineItems  []OrderLineItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
