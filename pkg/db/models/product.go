package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/partsdepot/partsdepot-backend/pkg/enums"
)

// Product is a spare-part listing. The cart reads price and availability live;
// nothing in the cart path ever mutates a product row.
type Product struct {
	ID            uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SKU           string             `gorm:"column:sku;not null;uniqueIndex:idx_products_sku"`
	Name          string             `gorm:"column:name;not null"`
	Description   *string            `gorm:"column:description"`
	Category      enums.PartCategory `gorm:"column:category;not null"`
	Brand         *string            `gorm:"column:brand"`
	Price         decimal.Decimal    `gorm:"column:price;type:numeric(10,2);not null"`
	OriginalPrice *decimal.Decimal   `gorm:"column:original_price;type:numeric(10,2)"`
	AvailableQty  int                `gorm:"column:available_qty;not null;default:0"`
	// No gorm default here: with a default tag Create drops zero values,
	// so inserting an inactive product would silently persist it active.
	// The column default lives in the migration.
	IsActive      bool               `gorm:"column:is_active;not null"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
