package tenant

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTokenResolverRoundTrip(t *testing.T) {
	r, err := NewTokenResolver("s3cret")
	if err != nil {
		t.Fatalf("NewTokenResolver: %v", err)
	}
	tok, err := r.Issue(77, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/projects", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	got, err := r.Resolve(req)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != 77 {
		t.Fatalf("Resolve = %d, want 77", got)
	}

	req = httptest.NewRequest("GET", "/api/events?token="+tok, nil)
	if _, err := r.Resolve(req); !errors.Is(err, ErrUnresolved) {
		t.Fatalf("plain resolver accepted a query token: %v", err)
	}
	if got, err := ForUpgrade(r).Resolve(req); err != nil || got != 77 {
		t.Fatalf("Resolve via query = %d, %v", got, err)
	}
}

func TestTokenResolverRejects(t *testing.T) {
	r, _ := NewTokenResolver("s3cret")
	other, _ := NewTokenResolver("other")
	foreign, _ := other.Issue(1, time.Hour)
	expired, _ := r.Issue(1, -time.Minute)

	cases := map[string]string{
		"missing":      "",
		"garbage":      "Bearer not-a-token",
		"wrong secret": "Bearer " + foreign,
		"expired":      "Bearer " + expired,
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			if _, err := r.Resolve(req); !errors.Is(err, ErrUnresolved) {
				t.Fatalf("expected ErrUnresolved, got %v", err)
			}
		})
	}
}

func TestNewTokenResolverEmptySecret(t *testing.T) {
	if _, err := NewTokenResolver(""); err == nil {
		t.Fatal("expected error for empty secret")
	}
}
