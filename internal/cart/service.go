package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/partsdepot/partsdepot-backend/pkg/db"
	"github.com/partsdepot/partsdepot-backend/pkg/db/models"
	pkgerrors "github.com/partsdepot/partsdepot-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service exposes the cart operations. Every mutation returns the full cart
// so clients never have to stitch deltas together.
type Service interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*CartDTO, error)
	AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) (*CartDTO, error)
	UpdateItem(ctx context.Context, userID, lineID uuid.UUID, quantity int) (*CartDTO, error)
	RemoveItem(ctx context.Context, userID, lineID uuid.UUID) (*CartDTO, error)
	Clear(ctx context.Context, userID uuid.UUID) (*CartDTO, error)
}

// AddItemInput captures the payload to add a product to the cart.
type AddItemInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1,max=99"`
}

// ServiceParams bundles the cart service dependencies.
type ServiceParams struct {
	Repo     *Repository
	Products productLoader
	TX       txRunner
}

type service struct {
	repo     *Repository
	products productLoader
	tx       txRunner
}

// NewService builds a cart service backed by the provided stack.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if params.TX == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:     params.Repo,
		products: params.Products,
		tx:       params.TX,
	}, nil
}

func (s *service) GetCart(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user required")
	}
	lines, err := s.repo.ListWithProducts(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list cart lines")
	}
	return NewCartDTO(lines), nil
}

// AddItem merges the requested quantity into the user's cart. A line already
// holding the product is stacked via a conditional update; otherwise a new
// line is inserted, falling back to the stacking path when a concurrent
// insert wins the unique (user_id, product_id) race.
func (s *service) AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) (*CartDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user required")
	}
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_id is required")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		loaded, err := s.products.FindByID(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
		}

		existingQty := 0
		existing, err := txRepo.FindLine(ctx, userID, input.ProductID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart line")
		}
		if existing != nil {
			existingQty = existing.Quantity
		}

		if err := checkAdd(loaded, existingQty, input.Quantity); err != nil {
			return err
		}

		if existing != nil {
			return s.stackLine(ctx, txRepo, userID, input.ProductID, input.Quantity)
		}

		line := &models.CartItem{
			ID:        uuid.New(),
			UserID:    userID,
			ProductID: input.ProductID,
			Quantity:  input.Quantity,
		}
		if err := txRepo.Insert(ctx, line); err != nil {
			if db.IsUniqueViolation(err, "idx_cart_items_user_product") {
				// Lost the insert race; merge onto the winner's line.
				return s.stackLine(ctx, txRepo, userID, input.ProductID, input.Quantity)
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert cart line")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetCart(ctx, userID)
}

func (s *service) UpdateItem(ctx context.Context, userID, lineID uuid.UUID, quantity int) (*CartDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user required")
	}
	if lineID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart item id required")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		line, err := txRepo.FindLineByID(ctx, userID, lineID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart line")
		}

		loaded, err := s.products.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
		}

		if err := checkSet(loaded, quantity); err != nil {
			return err
		}

		matched, err := txRepo.SetQuantity(ctx, userID, lineID, quantity)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: set cart quantity")
		}
		if !matched {
			// Stock moved between the guard check and the update.
			return pkgerrors.New(pkgerrors.CodeStateConflict, "cart changed, please retry")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetCart(ctx, userID)
}

func (s *service) RemoveItem(ctx context.Context, userID, lineID uuid.UUID) (*CartDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user required")
	}
	if lineID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart item id required")
	}

	deleted, err := s.repo.DeleteLine(ctx, userID, lineID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete cart line")
	}
	if !deleted {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	return s.GetCart(ctx, userID)
}

func (s *service) Clear(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user required")
	}
	if err := s.repo.Clear(ctx, userID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: clear cart")
	}
	return s.GetCart(ctx, userID)
}

// stackLine applies the conditional increment and converts a non-matching
// update into the guard error computed against fresh state.
func (s *service) stackLine(ctx context.Context, txRepo *Repository, userID, productID uuid.UUID, delta int) error {
	matched, err := txRepo.IncrementQuantity(ctx, userID, productID, delta)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: increment cart quantity")
	}
	if matched {
		return nil
	}

	loaded, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: reload product")
	}
	existingQty := 0
	if line, err := txRepo.FindLine(ctx, userID, productID); err == nil {
		existingQty = line.Quantity
	}
	if guardErr := checkAdd(loaded, existingQty, delta); guardErr != nil {
		return guardErr
	}
	return pkgerrors.New(pkgerrors.CodeStateConflict, "cart changed, please retry")
}
