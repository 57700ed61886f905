package events

import (
	"time"

	"github.com/messkit/meal-access-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventMealLogCreated  EventType = "meal_log_created"
	EventSessionDeclared EventType = "session_declared"
	EventTokenIssued     EventType = "token_issued"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// MealLogCreatedPayload carries one audit entry plus resolved display
// names for the student's live session.
type MealLogCreatedPayload struct {
	LogID          string               `json:"log_id"`
	Date           string               `json:"date"`
	MealType       domain.MealType      `json:"meal_type"`
	SupervisorID   string               `json:"supervisor_id"`
	SupervisorName string               `json:"supervisor_name"`
	Status         domain.MealLogStatus `json:"status"`
	Reason         string               `json:"reason"`
	Timestamp      time.Time            `json:"timestamp"`
}

// SessionDeclaredPayload payload.
type SessionDeclaredPayload struct {
	SessionID string          `json:"session_id"`
	MealType  domain.MealType `json:"meal_type"`
	StartTime time.Time       `json:"start_time"`
	EndTime   time.Time       `json:"end_time"`
}

// TokenIssuedPayload payload. The payload secret itself is never published.
type TokenIssuedPayload struct {
	MealType  domain.MealType `json:"meal_type"`
	ExpiresAt time.Time       `json:"expires_at"`
}
