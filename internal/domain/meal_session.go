package domain

import "time"

// MealSession is a supervisor-declared serving window. At most one session
// is active network-wide at any instant; declaring a new session
// deactivates all previous ones in the same transaction.
type MealSession struct {
	ID           string
	MealType     MealType
	StartTime    time.Time
	EndTime      time.Time
	IsActive     bool
	SupervisorID string
	CreatedAt    time.Time
}

// InEffect reports whether the session is active and covers the given
// instant (bounds inclusive).
func (s *MealSession) InEffect(now time.Time) bool {
	return s.IsActive && !now.Before(s.StartTime) && !now.After(s.EndTime)
}
