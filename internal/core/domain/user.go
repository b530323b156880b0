package domain

import "time"

const (
	RoleMember = "MEMBER"
	RoleAdmin  = "ADMIN"
)

// User models a registered player. Points is denormalized: it always equals the
// sum of the scores of the challenges the user has solved.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Points       int       `json:"points"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the user holds the ADMIN role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
