package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/partsdepot/partsdepot-backend/pkg/db/models"
)

// Repository manages persistent cart lines. All reads and writes are scoped
// by user, so a caller can never touch another user's cart through it.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repository to the provided DB handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx scopes the repository to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindLine loads the user's line for a product, if any.
func (r *Repository) FindLine(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error) {
	var line models.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&line).Error
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// FindLineByID loads a line by its ID, still scoped to the owning user.
func (r *Repository) FindLineByID(ctx context.Context, userID, lineID uuid.UUID) (*models.CartItem, error) {
	var line models.CartItem
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", lineID, userID).
		First(&line).Error
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// ListWithProducts returns the user's lines with their products preloaded,
// oldest line first so the cart renders in the order items were added.
func (r *Repository) ListWithProducts(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var lines []models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// Insert creates a new cart line. The unique (user_id, product_id) index
// rejects a second line for the same product.
func (r *Repository) Insert(ctx context.Context, line *models.CartItem) error {
	return r.db.WithContext(ctx).Create(line).Error
}

// IncrementQuantity stacks delta onto an existing line with a conditional
// update. The statement only matches when the merged quantity stays within
// the per-line cap and the product's current stock, so two concurrent adds
// can never combine into an oversold line. It reports whether a row matched.
func (r *Repository) IncrementQuantity(ctx context.Context, userID, productID uuid.UUID, delta int) (bool, error) {
	result := r.db.WithContext(ctx).Exec(`
UPDATE cart_items
SET quantity = quantity + ?, updated_at = ?
WHERE user_id = ? AND product_id = ?
  AND quantity + ? <= ?
  AND quantity + ? <= (
    SELECT available_qty FROM products WHERE products.id = cart_items.product_id
  )`,
		delta, time.Now().UTC(),
		userID, productID,
		delta, MaxLineQuantity,
		delta,
	)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// SetQuantity replaces a line's quantity with the same conditional guards as
// IncrementQuantity. It reports whether a row matched.
func (r *Repository) SetQuantity(ctx context.Context, userID, lineID uuid.UUID, quantity int) (bool, error) {
	result := r.db.WithContext(ctx).Exec(`
UPDATE cart_items
SET quantity = ?, updated_at = ?
WHERE id = ? AND user_id = ?
  AND ? <= ?
  AND ? <= (
    SELECT available_qty FROM products WHERE products.id = cart_items.product_id
  )`,
		quantity, time.Now().UTC(),
		lineID, userID,
		quantity, MaxLineQuantity,
		quantity,
	)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteLine removes a line owned by the user. It reports whether a row
// was deleted.
func (r *Repository) DeleteLine(ctx context.Context, userID, lineID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", lineID, userID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Clear removes every line in the user's cart.
func (r *Repository) Clear(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error
}
