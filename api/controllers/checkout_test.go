package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	checkoutsvc "github.com/partsdepot/partsdepot-backend/internal/checkout"
	"github.com/partsdepot/partsdepot-backend/internal/orders"
	pkgerrors "github.com/partsdepot/partsdepot-backend/pkg/errors"
)

type stubCheckoutService struct {
	result *checkoutsvc.CheckoutResult
	err    error

	gotUserID uuid.UUID
}

func (s *stubCheckoutService) Execute(_ context.Context, userID uuid.UUID) (*checkoutsvc.CheckoutResult, error) {
	s.gotUserID = userID
	return s.result, s.err
}

func TestCheckoutCreatesOrder(t *testing.T) {
	userID := uuid.New()
	orderID := uuid.New()
	svc := &stubCheckoutService{result: &checkoutsvc.CheckoutResult{
		Order:      &orders.OrderDTO{ID: orderID, Status: "pending", Total: "66.13"},
		PaymentURL: "https://pay.example/checkout?order_id=" + orderID.String(),
	}}
	handler := Checkout(svc, nil)

	req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil), userID)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.gotUserID != userID {
		t.Fatalf("expected user %s, service saw %s", userID, svc.gotUserID)
	}

	var envelope struct {
		Data checkoutsvc.CheckoutResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Order == nil || envelope.Data.Order.Status != "pending" {
		t.Fatalf("expected pending order, got %+v", envelope.Data.Order)
	}
	if !strings.Contains(envelope.Data.PaymentURL, orderID.String()) {
		t.Fatalf("payment url must reference the order, got %s", envelope.Data.PaymentURL)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")}
	handler := Checkout(svc, nil)

	req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil), uuid.New())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCheckoutRequiresUser(t *testing.T) {
	handler := Checkout(&stubCheckoutService{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil))

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
