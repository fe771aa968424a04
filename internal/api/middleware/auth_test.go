package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sinclaire-white/vehicle-renting-server/internal/auth"
	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/account"
)

const testSecret = "test-secret"

func okHandler(t *testing.T, wantID int64, wantRole account.Role) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, ok := IdentityFrom(r.Context())
		if !ok {
			t.Fatalf("identity missing from context")
		}
		if ident.AccountID != wantID || ident.Role != wantRole {
			t.Fatalf("unexpected identity: %+v", ident)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateNoToken(t *testing.T) {
	h := Authenticate(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticateBadToken(t *testing.T) {
	h := Authenticate(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticateWrongSecret(t *testing.T) {
	token, _, err := auth.GenerateToken("other-secret", 5, account.RoleCustomer, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	h := Authenticate(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticateValidToken(t *testing.T) {
	token, _, err := auth.GenerateToken(testSecret, 5, account.RoleAdmin, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	h := Authenticate(testSecret)(okHandler(t, 5, account.RoleAdmin))

	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := RequireRole(account.RoleAdmin)(next)

	// Customer hits an admin route.
	req := httptest.NewRequest(http.MethodPost, "/vehicles", nil)
	req = req.WithContext(WithIdentity(req.Context(), &auth.Identity{AccountID: 5, Role: account.RoleCustomer}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for customer, got %d", rec.Code)
	}

	// Admin passes.
	req = httptest.NewRequest(http.MethodPost, "/vehicles", nil)
	req = req.WithContext(WithIdentity(req.Context(), &auth.Identity{AccountID: 1, Role: account.RoleAdmin}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", rec.Code)
	}

	// No identity at all.
	req = httptest.NewRequest(http.MethodPost, "/vehicles", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", rec.Code)
	}
}
