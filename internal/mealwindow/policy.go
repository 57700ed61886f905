// Package mealwindow answers "which meal, if any, is currently servable?".
// The policy is consulted at redemption time, independent of the meal type
// bound to a token at issuance: a token's own expiresAt governs its
// personal lifetime, while the window check is a separate gate.
package mealwindow

import (
	"context"
	"time"

	"github.com/messkit/meal-access-service/internal/domain"
)

// Window describes the meal service currently open.
type Window struct {
	MealType domain.MealType
	Start    time.Time
	End      time.Time
}

// Policy reports the active serving window. A nil Window with a nil error
// means no meal is servable right now; redemption must deny.
type Policy interface {
	ActiveWindow(ctx context.Context, now time.Time) (*Window, error)
}
