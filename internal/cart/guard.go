package cart

import (
	"fmt"

	"github.com/partsdepot/partsdepot-backend/pkg/db/models"
	pkgerrors "github.com/partsdepot/partsdepot-backend/pkg/errors"
)

const (
	// MinLineQuantity is the smallest quantity a cart line may hold.
	MinLineQuantity = 1
	// MaxLineQuantity caps any single cart line regardless of stock.
	MaxLineQuantity = 99
)

// checkAdd validates stacking addQty on top of existingQty for the product.
// The returned error is client-facing and carries the remaining headroom so
// the storefront can render an actionable message.
func checkAdd(product *models.Product, existingQty, addQty int) error {
	if addQty < MinLineQuantity {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if !product.IsActive {
		return pkgerrors.New(pkgerrors.CodeValidation, "product is no longer available")
	}

	target := existingQty + addQty
	if target > MaxLineQuantity {
		remaining := MaxLineQuantity - existingQty
		if remaining < 0 {
			remaining = 0
		}
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("quantity limit is %d per item, you can add %d more", MaxLineQuantity, remaining))
	}
	if target > product.AvailableQty {
		remaining := product.AvailableQty - existingQty
		if remaining < 0 {
			remaining = 0
		}
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("insufficient stock: %d available", remaining))
	}
	return nil
}

// checkSet validates replacing a line quantity outright.
func checkSet(product *models.Product, qty int) error {
	if qty < MinLineQuantity {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if qty > MaxLineQuantity {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("quantity limit is %d per item", MaxLineQuantity))
	}
	if !product.IsActive {
		return pkgerrors.New(pkgerrors.CodeValidation, "product is no longer available")
	}
	if qty > product.AvailableQty {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("insufficient stock: %d available", product.AvailableQty))
	}
	return nil
}
