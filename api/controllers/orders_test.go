package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/partsdepot/partsdepot-backend/internal/orders"
	pkgerrors "github.com/partsdepot/partsdepot-backend/pkg/errors"
)

func withOrderParam(req *http.Request, orderID string) *http.Request {
	rc := chi.NewRouteContext()
	rc.URLParams.Add("orderId", orderID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))
}

func TestListOrdersScopedToUser(t *testing.T) {
	userID := uuid.New()
	svc := &stubOrdersService{listResult: &orders.OrderListResult{Orders: []orders.OrderDTO{}}}
	handler := ListOrders(svc, nil)

	req := withUser(httptest.NewRequest(http.MethodGet, "/api/v1/orders?limit=5", nil), userID)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.gotUserID != userID {
		t.Fatalf("expected user %s, service saw %s", userID, svc.gotUserID)
	}
}

func TestListOrdersRequiresUser(t *testing.T) {
	handler := ListOrders(&stubOrdersService{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil))

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestGetOrderSuccess(t *testing.T) {
	userID := uuid.New()
	orderID := uuid.New()
	svc := &stubOrdersService{detail: &orders.OrderDTO{ID: orderID, Status: "paid", Total: "66.13"}}
	handler := GetOrder(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+orderID.String(), nil)
	req = withOrderParam(withUser(req, userID), orderID.String())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.gotOrderID != orderID {
		t.Fatalf("expected order %s, service saw %s", orderID, svc.gotOrderID)
	}

	var envelope struct {
		Data orders.OrderDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Total != "66.13" {
		t.Fatalf("unexpected total: %s", envelope.Data.Total)
	}
}

func TestGetOrderNotFoundForOtherUser(t *testing.T) {
	orderID := uuid.New()
	svc := &stubOrdersService{err: pkgerrors.New(pkgerrors.CodeNotFound, "order not found")}
	handler := GetOrder(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+orderID.String(), nil)
	req = withOrderParam(withUser(req, uuid.New()), orderID.String())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
