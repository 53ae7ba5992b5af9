package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/partsdepot/partsdepot-backend/internal/auth"
	"github.com/partsdepot/partsdepot-backend/internal/users"
	pkgerrors "github.com/partsdepot/partsdepot-backend/pkg/errors"
)

type stubAuthService struct {
	resp *auth.LoginResponse
	err  error

	gotLogin auth.LoginRequest
}

func (s *stubAuthService) Login(_ context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	s.gotLogin = req
	return s.resp, s.err
}

type stubRegisterService struct {
	dto *users.UserDTO
	err error

	gotRegister auth.RegisterRequest
}

func (s *stubRegisterService) Register(_ context.Context, req auth.RegisterRequest) (*users.UserDTO, error) {
	s.gotRegister = req
	return s.dto, s.err
}

func TestAuthLoginSuccess(t *testing.T) {
	svc := &stubAuthService{resp: &auth.LoginResponse{AccessToken: "access", RefreshToken: "refresh"}}
	handler := AuthLogin(svc, nil)

	body := `{"email":"buyer@example.com","password":"super-secret-1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if got := resp.Header().Get("X-PD-Token"); got != "access" {
		t.Fatalf("expected token header, got %q", got)
	}
	if svc.gotLogin.Email != "buyer@example.com" {
		t.Fatalf("unexpected email: %s", svc.gotLogin.Email)
	}

	var envelope struct {
		Data auth.LoginResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.RefreshToken != "refresh" {
		t.Fatalf("unexpected refresh token: %s", envelope.Data.RefreshToken)
	}
}

func TestAuthLoginRejectsMalformedBody(t *testing.T) {
	handler := AuthLogin(&stubAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAuthLoginBadCredentials(t *testing.T) {
	svc := &stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}
	handler := AuthLogin(svc, nil)

	body := `{"email":"buyer@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRegisterSignsInNewAccount(t *testing.T) {
	registerSvc := &stubRegisterService{dto: &users.UserDTO{}}
	authSvc := &stubAuthService{resp: &auth.LoginResponse{AccessToken: "fresh-access"}}
	handler := AuthRegister(registerSvc, authSvc, nil)

	body := `{"name":"Jordan Mechanic","email":"jordan@example.com","password":"super-secret-1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if registerSvc.gotRegister.Email != "jordan@example.com" {
		t.Fatalf("unexpected register email: %s", registerSvc.gotRegister.Email)
	}
	if authSvc.gotLogin.Email != "jordan@example.com" || authSvc.gotLogin.Password != "super-secret-1" {
		t.Fatal("expected auto-login with the registration credentials")
	}
	if got := resp.Header().Get("X-PD-Token"); got != "fresh-access" {
		t.Fatalf("expected token header, got %q", got)
	}
}

func TestAuthRegisterDuplicateEmail(t *testing.T) {
	registerSvc := &stubRegisterService{err: pkgerrors.New(pkgerrors.CodeConflict, "email already registered")}
	handler := AuthRegister(registerSvc, &stubAuthService{}, nil)

	body := `{"name":"Jordan","email":"jordan@example.com","password":"super-secret-1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
}
