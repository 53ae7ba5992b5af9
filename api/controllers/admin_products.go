package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/partsdepot/partsdepot-backend/api/responses"
	"github.com/partsdepot/partsdepot-backend/api/validators"
	product "github.com/partsdepot/partsdepot-backend/internal/products"
	"github.com/partsdepot/partsdepot-backend/pkg/enums"
	pkgerrors "github.com/partsdepot/partsdepot-backend/pkg/errors"
	"github.com/partsdepot/partsdepot-backend/pkg/logger"
)

type createProductRequest struct {
	SKU           string  `json:"sku" validate:"required,min=1,max=64"`
	Name          string  `json:"name" validate:"required,min=1,max=200"`
	Description   *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Category      string  `json:"category" validate:"required"`
	Brand         *string `json:"brand,omitempty" validate:"omitempty,max=120"`
	Price         string  `json:"price" validate:"required"`
	OriginalPrice *string `json:"original_price,omitempty"`
	AvailableQty  int     `json:"available_qty" validate:"min=0"`
	IsActive      *bool   `json:"is_active,omitempty"`
}

// updateProductRequest applies only the fields the client actually sent;
// a present-but-empty value and an absent one are different things.
type updateProductRequest struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description   *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Category      *string `json:"category,omitempty"`
	Brand         *string `json:"brand,omitempty" validate:"omitempty,max=120"`
	Price         *string `json:"price,omitempty"`
	OriginalPrice *string `json:"original_price,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
}

type setInventoryRequest struct {
	AvailableQty *int `json:"available_qty" validate:"required,min=0"`
}

func parsePriceField(raw, field string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "invalid money amount").
			WithDetails(map[string]any{"field": field})
	}
	return value, nil
}

// AdminListProducts serves the back-office catalog, inactive listings included.
func AdminListProducts(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		input, err := parseListInput(r, true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func AdminCreateProduct(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var body createProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := enums.ParsePartCategory(body.Category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown part category").
				WithDetails(map[string]any{"field": "category"}))
			return
		}

		price, err := parsePriceField(body.Price, "price")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := product.CreateProductInput{
			SKU:          body.SKU,
			Name:         body.Name,
			Description:  body.Description,
			Category:     category,
			Brand:        body.Brand,
			Price:        price,
			AvailableQty: body.AvailableQty,
			IsActive:     true,
		}
		if body.IsActive != nil {
			input.IsActive = *body.IsActive
		}
		if body.OriginalPrice != nil {
			original, err := parsePriceField(*body.OriginalPrice, "original_price")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.OriginalPrice = &original
		}

		dto, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

func AdminUpdateProduct(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		productID, err := parseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := product.UpdateProductInput{
			Name:        body.Name,
			Description: body.Description,
			Brand:       body.Brand,
			IsActive:    body.IsActive,
		}
		if body.Category != nil {
			category, err := enums.ParsePartCategory(*body.Category)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown part category").
					WithDetails(map[string]any{"field": "category"}))
				return
			}
			input.Category = &category
		}
		if body.Price != nil {
			price, err := parsePriceField(*body.Price, "price")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.Price = &price
		}
		if body.OriginalPrice != nil {
			original, err := parsePriceField(*body.OriginalPrice, "original_price")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.OriginalPrice = &original
		}

		dto, err := svc.Update(r.Context(), productID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func AdminDeleteProduct(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		productID, err := parseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AdminSetInventory overwrites a product's stock level.
func AdminSetInventory(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		productID, err := parseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body setInventoryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.SetInventory(r.Context(), productID, *body.AvailableQty)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}
