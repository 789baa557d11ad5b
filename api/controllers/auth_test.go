package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/dmejiasc/comandas-backend/api/middleware"
	"github.com/dmejiasc/comandas-backend/internal/auth"
	"github.com/dmejiasc/comandas-backend/internal/users"
	pkgerrors "github.com/dmejiasc/comandas-backend/pkg/errors"
	"github.com/dmejiasc/comandas-backend/pkg/types"
)

type stubAuthService struct {
	login  func(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error)
	logout func(ctx context.Context, accessID string) error
	me     func(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error)
}

func (s *stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return s.login(ctx, req)
}

func (s *stubAuthService) Logout(ctx context.Context, accessID string) error {
	return s.logout(ctx, accessID)
}

func (s *stubAuthService) Me(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	return s.me(ctx, userID)
}

func TestLoginReturnsToken(t *testing.T) {
	svc := &stubAuthService{
		login: func(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
			if req.Username != "dmejia" || req.Password != "cocina-123" {
				t.Fatalf("unexpected credentials %+v", req)
			}
			return &auth.LoginResponse{AccessToken: "token", TokenType: "bearer"}, nil
		},
	}

	body := strings.NewReader(`{"username":"dmejia","password":"cocina-123"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	resp := httptest.NewRecorder()
	Login(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	var envelope types.SuccessEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	data := envelope.Data.(map[string]any)
	if data["access_token"] != "token" {
		t.Fatalf("unexpected payload %v", envelope.Data)
	}
}

func TestLoginRejectsMissingFields(t *testing.T) {
	svc := &stubAuthService{
		login: func(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}

	body := strings.NewReader(`{"username":"dmejia"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	resp := httptest.NewRecorder()
	Login(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestLoginMapsUnauthorized(t *testing.T) {
	svc := &stubAuthService{
		login: func(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		},
	}

	body := strings.NewReader(`{"username":"ghost","password":"nope"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	resp := httptest.NewRecorder()
	Login(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestMeUsesPrincipalFromContext(t *testing.T) {
	userID := uuid.New()
	svc := &stubAuthService{
		me: func(ctx context.Context, id uuid.UUID) (*users.UserDTO, error) {
			if id != userID {
				t.Fatalf("expected %s got %s", userID, id)
			}
			return &users.UserDTO{ID: id, Username: "dmejia"}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	resp := httptest.NewRecorder()
	Me(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestMeWithoutPrincipalIsUnauthorized(t *testing.T) {
	svc := &stubAuthService{
		me: func(ctx context.Context, id uuid.UUID) (*users.UserDTO, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	resp := httptest.NewRecorder()
	Me(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
