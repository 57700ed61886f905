package domain

import "time"

// Role enumerates account roles.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleStudent    Role = "STUDENT"
	RoleSupervisor Role = "SUPERVISOR"
)

// ResidentType classifies where a student lives.
type ResidentType string

const (
	ResidentHosteler   ResidentType = "HOSTELER"
	ResidentDayScholar ResidentType = "DAY_SCHOLAR"
)

// DietType is a student's dietary preference.
type DietType string

const (
	DietVeg    DietType = "VEG"
	DietNonVeg DietType = "NON_VEG"
)

// Account models a campus dining account. Student-only attributes are
// empty for ADMIN and SUPERVISOR roles.
type Account struct {
	ID           string
	UserID       string
	Name         string
	Role         Role
	Department   string
	Year         string
	ResidentType ResidentType
	DietType     DietType
	ValidDays    []string
	IsActive     bool
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidOn reports whether the account may redeem on the given weekday name.
func (a *Account) ValidOn(weekday string) bool {
	for _, day := range a.ValidDays {
		if day == weekday {
			return true
		}
	}
	return false
}

// AllWeekdays is the default redemption eligibility for new students.
func AllWeekdays() []string {
	return []string{"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY", "SUNDAY"}
}
