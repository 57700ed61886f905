package dto

import (
	"time"

	"github.com/messkit/meal-access-service/internal/domain"
)

// GenerateQRResponse carries a freshly issued token.
type GenerateQRResponse struct {
	Payload   string          `json:"payload"`
	MealType  domain.MealType `json:"mealType"`
	ExpiresAt time.Time       `json:"expiresAt"`
}

// GenerateQRRequest selects the meal the token is bound to.
type GenerateQRRequest struct {
	MealType domain.MealType `json:"mealType"`
}

// ScanRequest is what the supervisor's scanner submits.
type ScanRequest struct {
	QRPayload string `json:"qrPayload"`
}

// ScanStudent summarizes the granted student for the scanner display.
type ScanStudent struct {
	Name       string          `json:"name"`
	ID         string          `json:"id"`
	Meal       domain.MealType `json:"meal"`
	Department string          `json:"department"`
	Year       string          `json:"year"`
}

// ScanResponse is the structured scan outcome.
type ScanResponse struct {
	Status  domain.MealLogStatus `json:"status"`
	Reason  string               `json:"reason,omitempty"`
	Student *ScanStudent         `json:"student,omitempty"`
}

// SetSessionRequest declares a serving window.
type SetSessionRequest struct {
	MealType  domain.MealType `json:"mealType"`
	StartTime time.Time       `json:"startTime"`
	EndTime   time.Time       `json:"endTime"`
}

// SessionResponse is a serving window record.
type SessionResponse struct {
	ID           string          `json:"id"`
	MealType     domain.MealType `json:"mealType"`
	StartTime    time.Time       `json:"startTime"`
	EndTime      time.Time       `json:"endTime"`
	IsActive     bool            `json:"isActive"`
	SupervisorID string          `json:"supervisorId"`
}

// MealLogResponse is one audit entry.
type MealLogResponse struct {
	ID             string               `json:"id"`
	UserID         string               `json:"userId"`
	UserName       string               `json:"userName,omitempty"`
	StudentID      string               `json:"studentId,omitempty"`
	Date           string               `json:"date"`
	MealType       domain.MealType      `json:"mealType"`
	SupervisorID   string               `json:"supervisorId"`
	SupervisorName string               `json:"supervisorName,omitempty"`
	Status         domain.MealLogStatus `json:"status"`
	Reason         string               `json:"reason"`
	Timestamp      time.Time            `json:"timestamp"`
}

// MealLogFromDomain maps an audit entry.
func MealLogFromDomain(entry *domain.MealLog) MealLogResponse {
	return MealLogResponse{
		ID:             entry.ID,
		UserID:         entry.UserID,
		UserName:       entry.UserName,
		StudentID:      entry.StudentID,
		Date:           entry.Date,
		MealType:       entry.MealType,
		SupervisorID:   entry.SupervisorID,
		SupervisorName: entry.SupervisorName,
		Status:         entry.Status,
		Reason:         entry.Reason,
		Timestamp:      entry.Timestamp,
	}
}

// SessionFromDomain maps a session record.
func SessionFromDomain(session *domain.MealSession) SessionResponse {
	return SessionResponse{
		ID:           session.ID,
		MealType:     session.MealType,
		StartTime:    session.StartTime,
		EndTime:      session.EndTime,
		IsActive:     session.IsActive,
		SupervisorID: session.SupervisorID,
	}
}
