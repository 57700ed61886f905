package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/messkit/meal-access-service/internal/domain"
	"github.com/messkit/meal-access-service/internal/events"
	"github.com/messkit/meal-access-service/internal/repository"
	apperrors "github.com/messkit/meal-access-service/pkg/util"
)

// SessionService manages supervisor-declared serving windows.
type SessionService struct {
	sessions   repository.MealSessionRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// NewSessionService constructs the service.
func NewSessionService(sessions repository.MealSessionRepository, dispatcher events.Dispatcher) *SessionService {
	return &SessionService{sessions: sessions, dispatcher: dispatcher, now: time.Now}
}

// SetSession declares a new serving window, superseding every previously
// active session in one transaction.
func (s *SessionService) SetSession(ctx context.Context, meal domain.MealType, start, end time.Time, supervisorID string) (*domain.MealSession, error) {
	if !domain.ValidMealType(meal) {
		return nil, apperrors.NewValidationError("unknown meal type", nil)
	}
	if !end.After(start) {
		return nil, apperrors.NewValidationError("end_time must be after start_time", nil)
	}

	session := &domain.MealSession{
		ID:           uuid.NewString(),
		MealType:     meal,
		StartTime:    start,
		EndTime:      end,
		SupervisorID: supervisorID,
	}
	if err := s.sessions.Declare(ctx, session); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventSessionDeclared,
			UserID:    supervisorID,
			Timestamp: s.now(),
			Payload: events.SessionDeclaredPayload{
				SessionID: session.ID,
				MealType:  session.MealType,
				StartTime: session.StartTime,
				EndTime:   session.EndTime,
			},
		})
	}
	return session, nil
}

// GetActiveSession returns the active session record, or nil when none is
// declared.
func (s *SessionService) GetActiveSession(ctx context.Context) (*domain.MealSession, error) {
	session, err := s.sessions.GetActive(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return session, nil
}
