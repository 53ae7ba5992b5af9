package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/partsdepot/partsdepot-backend/pkg/db"
	"github.com/partsdepot/partsdepot-backend/pkg/db/models"
	"github.com/partsdepot/partsdepot-backend/pkg/enums"
	pkgerrors "github.com/partsdepot/partsdepot-backend/pkg/errors"
)

// Service exposes catalog reads plus back-office product management.
type Service interface {
	List(ctx context.Context, input ListProductsInput) (*ProductListResult, error)
	GetDetail(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	Update(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	Delete(ctx context.Context, productID uuid.UUID) error
	SetInventory(ctx context.Context, productID uuid.UUID, availableQty int) (*ProductDTO, error)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	SKU           string
	Name          string
	Description   *string
	Category      enums.PartCategory
	Brand         *string
	Price         decimal.Decimal
	OriginalPrice *decimal.Decimal
	AvailableQty  int
	IsActive      bool
}

// UpdateProductInput holds optional mutation values for a product. Only
// non-nil fields are applied, so absent and zero-valued inputs stay distinct.
type UpdateProductInput struct {
	Name          *string
	Description   *string
	Category      *enums.PartCategory
	Brand         *string
	Price         *decimal.Decimal
	OriginalPrice *decimal.Decimal
	IsActive      *bool
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo *Repository
	tx   txRunner
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) List(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	if input.Filters.Category != nil && !input.Filters.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown part category")
	}
	result, err := s.repo.List(ctx, input)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}
	return result, nil
}

func (s *service) GetDetail(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	found, err := s.repo.FindActiveByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	return NewProductDTO(found), nil
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	sku := strings.TrimSpace(input.SKU)
	if sku == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown part category")
	}
	if err := validatePrice(input.Price); err != nil {
		return nil, err
	}
	if input.OriginalPrice != nil {
		if err := validatePrice(*input.OriginalPrice); err != nil {
			return nil, err
		}
	}
	if input.AvailableQty < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "available_qty cannot be negative")
	}

	var created *models.Product
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		row := &models.Product{
			ID:            uuid.New(),
			SKU:           sku,
			Name:          strings.TrimSpace(input.Name),
			Description:   input.Description,
			Category:      input.Category,
			Brand:         input.Brand,
			Price:         input.Price,
			OriginalPrice: input.OriginalPrice,
			AvailableQty:  input.AvailableQty,
			IsActive:      input.IsActive,
		}
		var err error
		created, err = s.repo.WithTx(tx).Create(ctx, row)
		if err != nil {
			if db.IsUniqueViolation(err, "idx_products_sku") {
				return pkgerrors.New(pkgerrors.CodeConflict, "sku already exists")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewProductDTO(created), nil
}

func (s *service) Update(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if input.Category != nil && !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown part category")
	}
	if input.Price != nil {
		if err := validatePrice(*input.Price); err != nil {
			return nil, err
		}
	}
	if input.OriginalPrice != nil {
		if err := validatePrice(*input.OriginalPrice); err != nil {
			return nil, err
		}
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
	}

	var updated *models.Product
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		row, err := txRepo.FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
		}

		applyProductUpdate(row, input)

		updated, err = txRepo.Update(ctx, row)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewProductDTO(updated), nil
}

func (s *service) Delete(ctx context.Context, productID uuid.UUID) error {
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if err := s.repo.Delete(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
	}
	return nil
}

func (s *service) SetInventory(ctx context.Context, productID uuid.UUID, availableQty int) (*ProductDTO, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if availableQty < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "available_qty cannot be negative")
	}
	updated, err := s.repo.SetAvailableQty(ctx, productID, availableQty)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: set inventory")
	}
	return NewProductDTO(updated), nil
}

func applyProductUpdate(row *models.Product, input UpdateProductInput) {
	if input.Name != nil {
		row.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		row.Description = input.Description
	}
	if input.Category != nil {
		row.Category = *input.Category
	}
	if input.Brand != nil {
		row.Brand = input.Brand
	}
	if input.Price != nil {
		row.Price = *input.Price
	}
	if input.OriginalPrice != nil {
		row.OriginalPrice = input.OriginalPrice
	}
	if input.IsActive != nil {
		row.IsActive = *input.IsActive
	}
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() || price.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	return nil
}
