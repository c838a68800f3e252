package domain

import (
	"time"
)

type Role string

const (
	RoleITAdmin     Role = "IT Admin"
	RoleHRManager   Role = "HR Manager"
	RoleHRAssistant Role = "HR Assistant"
)

// IsValid reports whether r is one of the three recognized roles. Roles
// deserialized from untrusted input must pass this check before use.
func (r Role) IsValid() bool {
	switch r {
	case RoleITAdmin, RoleHRManager, RoleHRAssistant:
		return true
	}
	return false
}

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}
