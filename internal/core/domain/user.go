package domain

import "time"

// Group names used by the authorization policy.
const (
	GroupExecutiveOfficer = "Executive Officer"
	GroupOfficer          = "Officer"
	GroupStaff            = "Staff"
	GroupAdmin            = "admin"
)

// DefaultAuthorizedGroups may view time logs and reports.
var DefaultAuthorizedGroups = []string{GroupExecutiveOfficer, GroupStaff, GroupAdmin}

// User is a registered member account. StudentNumber is the login name.
type User struct {
	ID            uint      `json:"id"`
	StudentNumber string    `json:"student_number"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email,omitempty"`
	PasswordHash  string    `json:"-"`
	IsSuperuser   bool      `json:"is_superuser"`
	Groups        []string  `json:"groups"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Principal is the authenticated caller as seen by the authorization layer.
type Principal struct {
	UserID        uint
	StudentNumber string
	Superuser     bool
	Groups        []string
}
