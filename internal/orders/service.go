package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	product "github.com/partsdepot/partsdepot-backend/internal/products"
	"github.com/partsdepot/partsdepot-backend/pkg/db/models"
	"github.com/partsdepot/partsdepot-backend/pkg/enums"
	pkgerrors "github.com/partsdepot/partsdepot-backend/pkg/errors"
	"github.com/partsdepot/partsdepot-backend/pkg/logger"
	"github.com/partsdepot/partsdepot-backend/pkg/pagination"
	"github.com/partsdepot/partsdepot-backend/pkg/payment"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type callbackVerifier interface {
	VerifyCallback(orderID, statusCode, grossAmount, signature string) bool
}

// Service exposes order history reads and the payment callback transition.
type Service interface {
	List(ctx context.Context, userID uuid.UUID, params pagination.Params) (*OrderListResult, error)
	GetDetail(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error)
	HandleCallback(ctx context.Context, input CallbackInput) error
}

// CallbackInput carries the raw gateway notification fields. GrossAmount and
// StatusCode stay strings because the signature covers their exact wire form.
type CallbackInput struct {
	OrderID       string `json:"order_id" validate:"required,uuid"`
	StatusCode    string `json:"status_code" validate:"required"`
	GrossAmount   string `json:"gross_amount" validate:"required"`
	Signature     string `json:"signature" validate:"required"`
	TransactionID string `json:"transaction_id"`
}

// ServiceParams bundles the order service dependencies.
type ServiceParams struct {
	Repo     *Repository
	Products *product.Repository
	Gateway  callbackVerifier
	TX       txRunner
	Logger   *logger.Logger
}

type service struct {
	repo     *Repository
	products *product.Repository
	gateway  callbackVerifier
	tx       txRunner
	logg     *logger.Logger
}

// NewService builds the orders service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
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
		repo:     params.Repo,
		products: params.Products,
		gateway:  params.Gateway,
		tx:       params.TX,
		logg:     params.Logger,
	}, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, params pagination.Params) (*OrderListResult, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user required")
	}
	rows, nextCursor, err := s.repo.ListForUser(ctx, userID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list orders")
	}
	out := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewOrderDTO(&rows[i]))
	}
	return &OrderListResult{Orders: out, NextCursor: nextCursor}, nil
}

func (s *service) GetDetail(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user required")
	}
	order, err := s.repo.FindByIDForUser(ctx, userID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load order")
	}
	return NewOrderDTO(order), nil
}

// HandleCallback applies a gateway notification. Capture and settlement both
// move a pending order to paid; a cancel moves it to canceled and returns the
// line quantities to stock. Replays of an already-applied transition succeed
// without side effects.
func (s *service) HandleCallback(ctx context.Context, input CallbackInput) error {
	if !s.gateway.VerifyCallback(input.OrderID, input.StatusCode, input.GrossAmount, input.Signature) {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid callback signature")
	}

	orderID, err := uuid.Parse(input.OrderID)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid order id")
	}

	target, err := targetStatus(input.StatusCode)
	if err != nil {
		return err
	}

	ctx = s.logg.WithOrderID(ctx, orderID.String())
	ctx = s.logg.WithFields(ctx, map[string]any{
		"status_code":   input.StatusCode,
		"target_status": string(target),
	})

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		order, err := txRepo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load order")
		}

		if order.Total.StringFixed(2) != strings.TrimSpace(input.GrossAmount) {
			return pkgerrors.New(pkgerrors.CodeValidation, "gross amount does not match order total")
		}

		if order.Status == target {
			s.logg.Info(ctx, "payment.callback.replayed")
			return nil
		}

		matched, err := txRepo.TransitionStatus(ctx, orderID, enums.OrderStatusPending, target)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: transition order status")
		}
		if !matched {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("order is %s and cannot become %s", order.Status, target))
		}

		if input.TransactionID != "" {
			if err := txRepo.SetPaymentRef(ctx, orderID, input.TransactionID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: record payment ref")
			}
		}

		if target == enums.OrderStatusCanceled {
			if err := s.restock(ctx, tx, order); err != nil {
				return err
			}
		}

		s.logg.Info(ctx, "payment.callback.applied")
		return nil
	})
}

// restock returns every line quantity to stock, collecting partial failures
// so one bad line still rolls the whole transaction back with full context.
func (s *service) restock(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	restocker := s.products.WithTx(tx)

	var errs error
	for i := range order.LineItems {
		line := &order.LineItems[i]
		if err := restocker.IncrementAvailableQty(ctx, line.ProductID, line.Quantity); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("restock product %s: %w", line.ProductID, err))
		}
	}
	if errs != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "db: restock canceled order")
	}
	return nil
}

func targetStatus(statusCode string) (enums.OrderStatus, error) {
	switch statusCode {
	case payment.StatusCapture, payment.StatusSettlement:
		return enums.OrderStatusPaid, nil
	case payment.StatusCancel:
		return enums.OrderStatusCanceled, nil
	default:
		return "", pkgerrors.New(pkgerrors.CodeValidation, "unknown payment status code")
	}
}
