package gotrue

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("apikey") != "anon-key" {
			http.Error(w, "missing apikey", http.StatusUnauthorized)
			return
		}
		switch r.Header.Get("Authorization") {
		case "Bearer good-token":
			_ = json.NewEncoder(w).Encode(map[string]string{
				"id":                 "user-1",
				"email":              "user@example.com",
				"email_confirmed_at": "2026-01-01T00:00:00Z",
			})
		default:
			http.Error(w, "invalid token", http.StatusUnauthorized)
		}
	}))
}

func TestVerify(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	v, err := NewVerifier(Config{BaseURL: srv.URL, APIKey: "anon-key"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := v.Verify(context.Background(), "good-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "user@example.com" || !claims.EmailVerified {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerifyRejectsBadToken(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	v, _ := NewVerifier(Config{BaseURL: srv.URL, APIKey: "anon-key"})

	if _, err := v.Verify(context.Background(), "bad-token"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := v.Verify(context.Background(), ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for empty token, got %v", err)
	}
}

func TestNewVerifierRequiresBaseURL(t *testing.T) {
	if _, err := NewVerifier(Config{}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
