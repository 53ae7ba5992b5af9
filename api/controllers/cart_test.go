package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/partsdepot/partsdepot-backend/api/middleware"
	"github.com/partsdepot/partsdepot-backend/internal/cart"
	pkgerrors "github.com/partsdepot/partsdepot-backend/pkg/errors"
)

type stubCartService struct {
	dto *cart.CartDTO
	err error

	gotUserID   uuid.UUID
	gotLineID   uuid.UUID
	gotInput    cart.AddItemInput
	gotQuantity int
}

func (s *stubCartService) GetCart(_ context.Context, userID uuid.UUID) (*cart.CartDTO, error) {
	s.gotUserID = userID
	return s.dto, s.err
}

func (s *stubCartService) AddItem(_ context.Context, userID uuid.UUID, input cart.AddItemInput) (*cart.CartDTO, error) {
	s.gotUserID = userID
	s.gotInput = input
	return s.dto, s.err
}

func (s *stubCartService) UpdateItem(_ context.Context, userID, lineID uuid.UUID, quantity int) (*cart.CartDTO, error) {
	s.gotUserID = userID
	s.gotLineID = lineID
	s.gotQuantity = quantity
	return s.dto, s.err
}

func (s *stubCartService) RemoveItem(_ context.Context, userID, lineID uuid.UUID) (*cart.CartDTO, error) {
	s.gotUserID = userID
	s.gotLineID = lineID
	return s.dto, s.err
}

func (s *stubCartService) Clear(_ context.Context, userID uuid.UUID) (*cart.CartDTO, error) {
	s.gotUserID = userID
	return s.dto, s.err
}

func sampleCartDTO() *cart.CartDTO {
	return &cart.CartDTO{
		Items:     []cart.CartLineDTO{},
		ItemCount: 0,
		Subtotal:  "0.00",
		Tax:       "0.00",
		Shipping:  "0.00",
		Total:     "0.00",
	}
}

func withUser(req *http.Request, userID uuid.UUID) *http.Request {
	return req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
}

func withItemParam(req *http.Request, itemID string) *http.Request {
	rc := chi.NewRouteContext()
	rc.URLParams.Add("itemId", itemID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))
}

func TestGetCartSuccess(t *testing.T) {
	userID := uuid.New()
	svc := &stubCartService{dto: sampleCartDTO()}
	handler := GetCart(svc, nil)

	req := withUser(httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil), userID)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.gotUserID != userID {
		t.Fatalf("expected user %s, service saw %s", userID, svc.gotUserID)
	}

	var envelope struct {
		Data cart.CartDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Total != "0.00" {
		t.Fatalf("unexpected total: %s", envelope.Data.Total)
	}
}

func TestGetCartMissingUserContext(t *testing.T) {
	handler := GetCart(&stubCartService{dto: sampleCartDTO()}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestCartAddItemSuccess(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	svc := &stubCartService{dto: sampleCartDTO()}
	handler := CartAddItem(svc, nil)

	body := `{"product_id":"` + productID.String() + `","quantity":3}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = withUser(req, userID)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.gotInput.ProductID != productID {
		t.Fatalf("expected product %s, service saw %s", productID, svc.gotInput.ProductID)
	}
	if svc.gotInput.Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", svc.gotInput.Quantity)
	}
}

func TestCartAddItemRejectsZeroQuantity(t *testing.T) {
	handler := CartAddItem(&stubCartService{dto: sampleCartDTO()}, nil)

	body := `{"product_id":"` + uuid.NewString() + `","quantity":0}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = withUser(req, uuid.New())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestCartAddItemInsufficientStock(t *testing.T) {
	svc := &stubCartService{err: pkgerrors.New(pkgerrors.CodeValidation, "insufficient stock: 2 available")}
	handler := CartAddItem(svc, nil)

	body := `{"product_id":"` + uuid.NewString() + `","quantity":5}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = withUser(req, uuid.New())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "insufficient stock") {
		t.Fatalf("expected stock message, got %s", resp.Body.String())
	}
}

func TestCartUpdateItemSuccess(t *testing.T) {
	userID := uuid.New()
	lineID := uuid.New()
	svc := &stubCartService{dto: sampleCartDTO()}
	handler := CartUpdateItem(svc, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/cart/"+lineID.String(), strings.NewReader(`{"quantity":7}`))
	req.Header.Set("Content-Type", "application/json")
	req = withItemParam(withUser(req, userID), lineID.String())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.gotLineID != lineID {
		t.Fatalf("expected line %s, service saw %s", lineID, svc.gotLineID)
	}
	if svc.gotQuantity != 7 {
		t.Fatalf("expected quantity 7, got %d", svc.gotQuantity)
	}
}

func TestCartUpdateItemBadID(t *testing.T) {
	handler := CartUpdateItem(&stubCartService{dto: sampleCartDTO()}, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/cart/not-a-uuid", strings.NewReader(`{"quantity":2}`))
	req.Header.Set("Content-Type", "application/json")
	req = withItemParam(withUser(req, uuid.New()), "not-a-uuid")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartRemoveItemNotFound(t *testing.T) {
	lineID := uuid.New()
	svc := &stubCartService{err: pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")}
	handler := CartRemoveItem(svc, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart/"+lineID.String(), nil)
	req = withItemParam(withUser(req, uuid.New()), lineID.String())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestCartClearSuccess(t *testing.T) {
	userID := uuid.New()
	svc := &stubCartService{dto: sampleCartDTO()}
	handler := CartClear(svc, nil)

	req := withUser(httptest.NewRequest(http.MethodDelete, "/api/v1/cart/clear", nil), userID)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.gotUserID != userID {
		t.Fatalf("expected user %s, service saw %s", userID, svc.gotUserID)
	}
}
