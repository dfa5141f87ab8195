package domain

import "time"

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleAgency UserRole = "agency"
)

type User struct {
	ID                int64     `json:"id"`
	Email             string    `json:"email" validate:"required,email"`
	PasswordHash      string    `json:"-"`
	Role              UserRole  `json:"role"`
	Name              string    `json:"name"`
	AgencyName        string    `json:"agencyName,omitempty"`
	Address           string    `json:"address,omitempty"`
	RC                string    `json:"rc,omitempty"`
	Phone             string    `json:"phone,omitempty"`
	IsProfileComplete bool      `json:"isProfileComplete"`
	IsApproved        bool      `json:"isApproved"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Principal is the authenticated identity threaded into every lifecycle
// operation. Role gates which transitions are callable.
type Principal struct {
	ID   int64
	Role UserRole
}

func (p Principal) IsAdmin() bool  { return p.Role == RoleAdmin }
func (p Principal) IsAgency() bool { return p.Role == RoleAgency }
