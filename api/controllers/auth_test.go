package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/fitnesspro/fitnesspro-backend/api/middleware"
	"github.com/fitnesspro/fitnesspro-backend/internal/identity"
)

type stubIdentityService struct {
	result   *identity.AuthResultDTO
	account  *identity.AccountDTO
	err      error
	lastIP   string
	loggedID string
}

func (s *stubIdentityService) Login(ctx context.Context, input identity.LoginInput, clientIP string) (*identity.AuthResultDTO, error) {
	s.lastIP = clientIP
	return s.result, s.err
}

func (s *stubIdentityService) Refresh(ctx context.Context, input identity.RefreshInput) (*identity.TokenPairDTO, error) {
	if s.result == nil {
		return nil, s.err
	}
	return &s.result.TokenPairDTO, s.err
}

func (s *stubIdentityService) Logout(ctx context.Context, accessID string) error {
	s.loggedID = accessID
	return s.err
}

func (s *stubIdentityService) Me(ctx context.Context, userID uuid.UUID) (*identity.AccountDTO, error) {
	return s.account, s.err
}

func (s *stubIdentityService) UpdateAccount(ctx context.Context, userID uuid.UUID, input identity.UpdateAccountInput) (*identity.AccountDTO, error) {
	return s.account, s.err
}

func TestAuthLoginSuccess(t *testing.T) {
	svc := &stubIdentityService{result: &identity.AuthResultDTO{
		TokenPairDTO: identity.TokenPairDTO{
			AccessToken:  "access-token",
			RefreshToken: "refresh-token",
			TokenType:    "Bearer",
			ExpiresIn:    900,
		},
	}}
	handler := AuthLogin(svc, nil)

	body := []byte(`{"email":"coach@example.com","password":"Secret#1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastIP != "203.0.113.9" {
		t.Fatalf("expected forwarded client ip, got %q", svc.lastIP)
	}

	var envelope struct {
		Data struct {
			AccessToken string `json:"access_token"`
			TokenType   string `json:"token_type"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.AccessToken != "access-token" || envelope.Data.TokenType != "Bearer" {
		t.Fatalf("unexpected token payload %+v", envelope.Data)
	}
}

func TestAuthLoginInvalidPayload(t *testing.T) {
	handler := AuthLogin(&stubIdentityService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte(`{"email":"coach@example.com"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAuthMeRequiresIdentity(t *testing.T) {
	handler := AuthMe(&stubIdentityService{account: &identity.AccountDTO{}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 with identity got %d", resp.Code)
	}
}

func TestClientIPFallsBackToRemoteAddr(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.4:51234"
	if got := clientIP(req); got != "198.51.100.4" {
		t.Fatalf("expected remote addr host, got %q", got)
	}

	req.Header.Set("X-Forwarded-For", "not-an-ip")
	if got := clientIP(req); got != "198.51.100.4" {
		t.Fatalf("expected fallback past bad forwarded header, got %q", got)
	}
}
