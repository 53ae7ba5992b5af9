package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/partsdepot/partsdepot-backend/internal/cart"
	"github.com/partsdepot/partsdepot-backend/internal/orders"
	product "github.com/partsdepot/partsdepot-backend/internal/products"
	"github.com/partsdepot/partsdepot-backend/pkg/db/models"
	"github.com/partsdepot/partsdepot-backend/pkg/enums"
	pkgerrors "github.com/partsdepot/partsdepot-backend/pkg/errors"
	"github.com/partsdepot/partsdepot-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type redirectBuilder interface {
	RedirectURL(orderID string, total decimal.Decimal) (string, error)
}

// Service converts a cart into a pending order and hands the buyer to the
// payment gateway.
type Service interface {
	Execute(ctx context.Context, userID uuid.UUID) (*CheckoutResult, error)
}

// CheckoutResult is the checkout response payload.
type CheckoutResult struct {
	Order      *orders.OrderDTO `json:"order"`
	PaymentURL string           `json:"payment_url"`
}

// ServiceParams bundles the checkout dependencies.
type ServiceParams struct {
	CartRepo   *cart.Repository
	OrdersRepo *orders.Repository
	Products   *product.Repository
	Gateway    redirectBuilder
	TX         txRunner
	Logger     *logger.Logger
}

type service struct {
	cartRepo   *cart.Repository
	ordersRepo *orders.Repository
	products   *product.Repository
	gateway    redirectBuilder
	tx         txRunner
	logg       *logger.Logger
}

// NewService builds the checkout service.
func NewService(params ServiceParams) (Service, error) {
	if params.CartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if params.OrdersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if params.Gateway == nil {
		return nil, fmt.Errorf("payment gateway required")
	}
	if params.TX == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		cartRepo:   params.CartRepo,
		ordersRepo: params.OrdersRepo,
		products:   params.Products,
		gateway:    params.Gateway,
		tx:         params.TX,
		logg:       params.Logger,
	}, nil
}

// Execute snapshots the cart into an order in one transaction: stock is
// taken with conditional decrements, unit prices are frozen onto the line
// items, and the cart is cleared. Any guard failure rolls everything back,
// leaving both cart and stock untouched.
func (s *service) Execute(ctx context.Context, userID uuid.UUID) (*CheckoutResult, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user required")
	}

	var order *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txCart := s.cartRepo.WithTx(tx)
		txProducts := s.products.WithTx(tx)
		txOrders := s.ordersRepo.WithTx(tx)

		lines, err := txCart.ListWithProducts(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list cart lines")
		}
		if len(lines) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}

		lineItems := make([]models.OrderLineItem, 0, len(lines))
		for i := range lines {
			line := &lines[i]
			if line.Product == nil {
				return pkgerrors.New(pkgerrors.CodeValidation, "a cart item refers to a removed product")
			}
			if !line.Product.IsActive {
				return pkgerrors.New(pkgerrors.CodeValidation,
					fmt.Sprintf("%s is no longer available", line.Product.Name))
			}

			taken, err := txProducts.DecrementAvailableQty(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: decrement stock")
			}
			if !taken {
				return pkgerrors.New(pkgerrors.CodeValidation,
					fmt.Sprintf("insufficient stock for %s", line.Product.Name))
			}

			lineTotal := line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2)
			lineItems = append(lineItems, models.OrderLineItem{
				ID:        uuid.New(),
				ProductID: line.ProductID,
				SKU:       line.Product.SKU,
				Name:      line.Product.Name,
				UnitPrice: line.Product.Price,
				Quantity:  line.Quantity,
				LineTotal: lineTotal,
			})
		}

		totals := cart.ComputeTotals(lines)

		order = &models.Order{
			ID:       uuid.New(),
			UserID:   userID,
			Status:   enums.OrderStatusPending,
			Subtotal: totals.Subtotal,
			Tax:      totals.Tax,
			Shipping: totals.Shipping,
			Total:    totals.Total,
		}
		for i := range lineItems {
			lineItems[i].OrderID = order.ID
		}
		order.LineItems = lineItems

		if _, err := txOrders.Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: create order")
		}

		if err := txCart.Clear(ctx, userID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: clear cart")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	paymentURL, err := s.gateway.RedirectURL(order.ID.String(), order.Total)
	if err != nil {
		return nil, err
	}

	ctx = s.logg.WithOrderID(ctx, order.ID.String())
	s.logg.Info(ctx, "checkout.order.created")

	return &CheckoutResult{
		Order:      orders.NewOrderDTO(order),
		PaymentURL: paymentURL,
	}, nil
}
