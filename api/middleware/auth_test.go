package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dmejiasc/comandas-backend/pkg/auth"
	"github.com/dmejiasc/comandas-backend/pkg/config"
	"github.com/dmejiasc/comandas-backend/pkg/enums"
)

func testMiddlewareJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "comandas", ExpirationMinutes: 60}
}

func okHandler(hit *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hit != nil {
			*hit = true
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthRejectsMissingToken(t *testing.T) {
	handler := Auth(testMiddlewareJWTConfig(), stubSessionVerifier{ok: true}, nil)(okHandler(nil))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	handler := Auth(testMiddlewareJWTConfig(), stubSessionVerifier{ok: true}, nil)(okHandler(nil))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer invalid")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthAllowsValidToken(t *testing.T) {
	cfg := testMiddlewareJWTConfig()
	fullName := "Diana Mejia"
	userID := uuid.New()
	token := mintTestToken(t, cfg, auth.AccessTokenPayload{
		UserID:   userID,
		Username: "dmejia",
		FullName: &fullName,
		Role:     enums.UserRoleOperator,
		JTI:      "jti-1",
	})

	var captured struct {
		user  string
		actor string
		role  string
		jti   string
	}
	handler := Auth(cfg, stubSessionVerifier{ok: true}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.user = UserIDFromContext(r.Context())
		captured.actor = ActorNameFromContext(r.Context())
		captured.role = RoleFromContext(r.Context())
		captured.jti = AccessIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if captured.user != userID.String() {
		t.Fatalf("expected user id %s got %s", userID, captured.user)
	}
	if captured.actor != fullName {
		t.Fatalf("expected actor %q got %q", fullName, captured.actor)
	}
	if captured.role != string(enums.UserRoleOperator) {
		t.Fatalf("expected operator role got %s", captured.role)
	}
	if captured.jti != "jti-1" {
		t.Fatalf("expected jti in context got %q", captured.jti)
	}
}

func TestAuthActorFallsBackToUsername(t *testing.T) {
	cfg := testMiddlewareJWTConfig()
	token := mintTestToken(t, cfg, auth.AccessTokenPayload{
		UserID:   uuid.New(),
		Username: "mesero1",
		Role:     enums.UserRoleOperator,
		JTI:      "jti-2",
	})

	var actor string
	handler := Auth(cfg, stubSessionVerifier{ok: true}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor = ActorNameFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if actor != "mesero1" {
		t.Fatalf("expected username fallback got %q", actor)
	}
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	cfg := testMiddlewareJWTConfig()
	token := mintTestToken(t, cfg, auth.AccessTokenPayload{
		UserID:   uuid.New(),
		Username: "dmejia",
		Role:     enums.UserRoleAdmin,
		JTI:      "jti-3",
	})

	var hit bool
	handler := Auth(cfg, stubSessionVerifier{ok: false}, nil)(okHandler(&hit))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
	if hit {
		t.Fatal("revoked session must not reach the handler")
	}
}

func TestRequireRoles(t *testing.T) {
	var hit bool
	handler := RequireRoles(nil, string(enums.UserRoleAdmin))(okHandler(&hit))

	ctx := context.WithValue(context.Background(), ctxRole, string(enums.UserRoleOperator))
	req := httptest.NewRequest(http.MethodPost, "/", nil).WithContext(ctx)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
	if hit {
		t.Fatal("forbidden request must not reach the handler")
	}

	ctx = context.WithValue(context.Background(), ctxRole, string(enums.UserRoleAdmin))
	req = httptest.NewRequest(http.MethodPost, "/", nil).WithContext(ctx)
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func mintTestToken(t *testing.T, cfg config.JWTConfig, payload auth.AccessTokenPayload) string {
	t.Helper()
	token, err := auth.MintAccessToken(cfg, time.Now().UTC(), payload)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

type stubSessionVerifier struct {
	ok bool
}

func (s stubSessionVerifier) HasSession(ctx context.Context, accessID string) (bool, error) {
	return s.ok, nil
}
