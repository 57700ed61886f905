package mealwindow

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/messkit/meal-access-service/internal/repository"
)

// SessionPolicy resolves the window from the supervisor-declared session
// record. A session is in effect iff it is active and now falls inside its
// declared interval.
type SessionPolicy struct {
	sessions repository.MealSessionRepository
}

// NewSessionPolicy constructs the policy over the session repository.
func NewSessionPolicy(sessions repository.MealSessionRepository) *SessionPolicy {
	return &SessionPolicy{sessions: sessions}
}

// ActiveWindow returns the declared window covering now, or nil when no
// session exists, the active session has not started, or it has ended.
func (p *SessionPolicy) ActiveWindow(ctx context.Context, now time.Time) (*Window, error) {
	session, err := p.sessions.GetActive(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if !session.InEffect(now) {
		return nil, nil
	}
	return &Window{
		MealType: session.MealType,
		Start:    session.StartTime,
		End:      session.EndTime,
	}, nil
}
