package domain

import (
	"testing"
	"time"
)

func TestMealDateUsesConfiguredLocation(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// 20:00 UTC on March 10 is already March 11 in Kolkata. The same
	// instant must key different calendar dates under different policies,
	// and must never mix within one deployment.
	instant := time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)

	if got := MealDate(instant, time.UTC); got != "2025-03-10" {
		t.Fatalf("UTC date: want 2025-03-10, got %s", got)
	}
	if got := MealDate(instant, kolkata); got != "2025-03-11" {
		t.Fatalf("Kolkata date: want 2025-03-11, got %s", got)
	}
}

func TestWeekdayNameCrossesMidnight(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// Monday 20:00 UTC is Tuesday in Kolkata.
	instant := time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)
	if got := WeekdayName(instant, time.UTC); got != "MONDAY" {
		t.Fatalf("want MONDAY, got %s", got)
	}
	if got := WeekdayName(instant, kolkata); got != "TUESDAY" {
		t.Fatalf("want TUESDAY, got %s", got)
	}
}

func TestAccountValidOn(t *testing.T) {
	account := Account{ValidDays: []string{"MONDAY", "WEDNESDAY"}}
	if !account.ValidOn("MONDAY") {
		t.Fatalf("MONDAY should be valid")
	}
	if account.ValidOn("SUNDAY") {
		t.Fatalf("SUNDAY should not be valid")
	}

	empty := Account{}
	if empty.ValidOn("MONDAY") {
		t.Fatalf("empty valid days must deny every weekday")
	}
}

func TestTokenExpired(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	token := Token{ExpiresAt: now.Add(5 * time.Minute)}

	if token.Expired(now) {
		t.Fatalf("fresh token must not be expired")
	}
	if token.Expired(now.Add(5 * time.Minute)) {
		t.Fatalf("expiry bound is inclusive of the last instant")
	}
	if !token.Expired(now.Add(5*time.Minute + time.Second)) {
		t.Fatalf("token past expiresAt must be expired")
	}
}

func TestSessionInEffect(t *testing.T) {
	now := time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC)
	session := MealSession{
		MealType:  MealLunch,
		StartTime: now.Add(-time.Hour),
		EndTime:   now.Add(time.Hour),
		IsActive:  true,
	}

	if !session.InEffect(now) {
		t.Fatalf("session covering now must be in effect")
	}
	if !session.InEffect(session.StartTime) || !session.InEffect(session.EndTime) {
		t.Fatalf("bounds are inclusive")
	}
	if session.InEffect(session.EndTime.Add(time.Second)) {
		t.Fatalf("session past its end must not be in effect")
	}

	session.IsActive = false
	if session.InEffect(now) {
		t.Fatalf("deactivated session must not be in effect")
	}
}
