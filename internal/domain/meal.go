package domain

import (
	"strings"
	"time"
)

// MealType identifies a meal service.
type MealType string

const (
	MealBreakfast MealType = "BREAKFAST"
	MealLunch     MealType = "LUNCH"
	MealDinner    MealType = "DINNER"
)

// ValidMealType reports whether the value is a known meal service.
func ValidMealType(m MealType) bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner:
		return true
	}
	return false
}

// MealDate renders the canonical calendar date (YYYY-MM-DD) for a point in
// time, in the service's configured location. Duplicate detection keys on
// this value, so every caller must use the same location.
func MealDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// WeekdayName returns the uppercase English weekday for a point in time in
// the service's configured location.
func WeekdayName(t time.Time, loc *time.Location) string {
	return strings.ToUpper(t.In(loc).Weekday().String())
}
