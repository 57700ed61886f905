package service

import (
	"context"
	"encoding/hex"
	"testing"
	"time"

	"github.com/messkit/meal-access-service/internal/domain"
)

func newIssuanceFixture(window *fakeWindow, requireWindow bool) (*TokenService, *fakeTokenStore, time.Time) {
	store := newFakeTokenStore()
	now := time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC)
	svc := NewTokenService(TokenDependencies{
		Tokens:        store,
		Window:        window,
		TTL:           5 * time.Minute,
		RequireWindow: requireWindow,
		Now:           func() time.Time { return now },
	})
	return svc, store, now
}

func TestIssueProducesUnguessablePayload(t *testing.T) {
	svc, store, now := newIssuanceFixture(openWindow(domain.MealLunch), false)
	account := studentAccount()

	token, err := svc.Issue(context.Background(), &account, domain.MealLunch)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// 32 random bytes, hex encoded.
	if len(token.Payload) != 64 {
		t.Fatalf("want 64 hex chars, got %d", len(token.Payload))
	}
	if _, err := hex.DecodeString(token.Payload); err != nil {
		t.Fatalf("payload is not hex: %v", err)
	}
	if !token.ExpiresAt.Equal(now.Add(5 * time.Minute)) {
		t.Fatalf("want expiry %v, got %v", now.Add(5*time.Minute), token.ExpiresAt)
	}
	if token.MealType != domain.MealLunch {
		t.Fatalf("want LUNCH bound at issuance, got %s", token.MealType)
	}

	stored, err := store.Lookup(context.Background(), token.Payload)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if stored.UserID != account.ID {
		t.Fatalf("stored token owner mismatch: %s", stored.UserID)
	}
}

func TestIssuePayloadsAreUnique(t *testing.T) {
	svc, _, _ := newIssuanceFixture(openWindow(domain.MealLunch), false)
	account := studentAccount()

	seen := make(map[string]struct{})
	for i := 0; i < 64; i++ {
		token, err := svc.Issue(context.Background(), &account, domain.MealLunch)
		if err != nil {
			t.Fatalf("issue %d: %v", i, err)
		}
		if _, dup := seen[token.Payload]; dup {
			t.Fatalf("duplicate payload on issue %d", i)
		}
		seen[token.Payload] = struct{}{}
	}
}

func TestIssueAllowsMultipleLiveTokens(t *testing.T) {
	svc, store, _ := newIssuanceFixture(openWindow(domain.MealLunch), false)
	account := studentAccount()

	first, err := svc.Issue(context.Background(), &account, domain.MealLunch)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	second, err := svc.Issue(context.Background(), &account, domain.MealLunch)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Refreshing a QR code does not invalidate the previous one.
	if _, err := store.Lookup(context.Background(), first.Payload); err != nil {
		t.Fatalf("first token gone after refresh: %v", err)
	}
	if _, err := store.Lookup(context.Background(), second.Payload); err != nil {
		t.Fatalf("second token missing: %v", err)
	}
}

func TestIssueRejectsUnknownMealType(t *testing.T) {
	svc, _, _ := newIssuanceFixture(openWindow(domain.MealLunch), false)
	account := studentAccount()

	if _, err := svc.Issue(context.Background(), &account, domain.MealType("BRUNCH")); err == nil {
		t.Fatalf("want validation error for unknown meal type")
	}
}

func TestIssueWindowGate(t *testing.T) {
	account := studentAccount()

	svc, _, _ := newIssuanceFixture(&fakeWindow{}, true)
	if _, err := svc.Issue(context.Background(), &account, domain.MealLunch); err == nil {
		t.Fatalf("want error when no window is open and the gate is enabled")
	}

	svc, _, _ = newIssuanceFixture(openWindow(domain.MealDinner), true)
	if _, err := svc.Issue(context.Background(), &account, domain.MealLunch); err == nil {
		t.Fatalf("want error when requesting a meal outside the open window")
	}

	svc, _, _ = newIssuanceFixture(openWindow(domain.MealLunch), true)
	if _, err := svc.Issue(context.Background(), &account, domain.MealLunch); err != nil {
		t.Fatalf("issue during matching window: %v", err)
	}

	// Gate disabled: issuance never consults the window.
	svc, _, _ = newIssuanceFixture(&fakeWindow{}, false)
	if _, err := svc.Issue(context.Background(), &account, domain.MealLunch); err != nil {
		t.Fatalf("issue with gate disabled: %v", err)
	}
}
