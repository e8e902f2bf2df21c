// internal/model/user.go
package model

import "time"

// User roles. Managers see every owner's rows, everyone else sees their own.
const (
	RoleUser    = "user"
	RoleManager = "manager"
)

type User struct {
	ID           int       `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Username     string    `db:"username" json:"username,omitempty"`
	Phone        string    `db:"phone" json:"phone,omitempty"`
	Avatar       string    `db:"avatar" json:"avatar,omitempty"`
	Country      string    `db:"country" json:"country,omitempty"`
	Role         string    `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	IsBlocked    bool      `db:"is_blocked" json:"is_blocked"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// IsManager reports whether the user has full visibility over all owners' data.
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}
