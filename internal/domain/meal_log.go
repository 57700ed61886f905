package domain

import "time"

// MealLogStatus is the outcome of a redemption attempt.
type MealLogStatus string

const (
	StatusAllowed MealLogStatus = "ALLOWED"
	StatusDenied  MealLogStatus = "DENIED"
)

// MealLog is an append-only audit record of one redemption attempt.
// Date is a calendar day (YYYY-MM-DD) in the configured timezone, not a
// timestamp; it is the duplicate-detection key together with UserID and
// MealType. At most one ALLOWED entry may exist per (user, date, meal).
type MealLog struct {
	ID           string
	UserID       string
	Date         string
	MealType     MealType
	SupervisorID string
	Status       MealLogStatus
	Reason       string
	Timestamp    time.Time

	// Joined display fields, populated by list queries only.
	UserName       string
	StudentID      string
	SupervisorName string
}
