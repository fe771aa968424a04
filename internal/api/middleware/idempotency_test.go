package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIdempotencyNilClientPassthrough(t *testing.T) {
	called := false
	h := Idempotency(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
	req.Header.Set("Idempotency-Key", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if !called {
		t.Fatalf("handler must run without a cache client")
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestIdempotencyGetRequestsBypass(t *testing.T) {
	called := false
	h := Idempotency(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	req.Header.Set("Idempotency-Key", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if !called {
		t.Fatalf("reads must bypass the idempotency guard")
	}
}

func TestStatusRecorder(t *testing.T) {
	rec := httptest.NewRecorder()
	sr := &statusRecorder{ResponseWriter: rec, status: http.StatusOK}

	sr.WriteHeader(http.StatusConflict)
	if sr.status != http.StatusConflict {
		t.Fatalf("explicit status not captured: %d", sr.status)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("status not forwarded: %d", rec.Code)
	}

	// A handler that only writes the body leaves the implicit 200 in place.
	sr = &statusRecorder{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK}
	if _, err := sr.Write([]byte("ok")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if sr.status != http.StatusOK {
		t.Fatalf("default status lost: %d", sr.status)
	}
}
