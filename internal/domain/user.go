package domain

import "time"

// UserRole enumerates who a user acts as.
type UserRole string

const (
	RoleAdmin       UserRole = "ADMIN"
	RoleAgencyStaff UserRole = "AGENCY_STAFF"
	RoleCitizen     UserRole = "CITIZEN"
)

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleAgencyStaff, RoleCitizen:
		return true
	}
	return false
}

// IsStaff reports whether the role belongs to agency personnel or administrators.
func (r UserRole) IsStaff() bool {
	return r == RoleAdmin || r == RoleAgencyStaff
}

// UserStatus represents lifecycle states for an account.
type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
)

// Valid reports whether s is a known status.
func (s UserStatus) Valid() bool {
	return s == UserStatusActive || s == UserStatusInactive
}

// User is any account: citizen, agency staff or administrator.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         UserRole
	Status       UserStatus
	AgencyID     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive reports whether the account may authenticate.
func (u *User) IsActive() bool {
	return u != nil && u.Status == UserStatusActive
}
