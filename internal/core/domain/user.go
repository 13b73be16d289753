package domain

import "time"

// User is an account holder. Every Transaction belongs to exactly one User.
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	AcceptPrivacy bool      `json:"accept_privacy"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UserPatch carries the fields of a partial profile update. Nil fields are
// left untouched. PasswordHash is set by the service, never by callers.
type UserPatch struct {
	Name          *string
	Email         *string
	PasswordHash  *string
	AcceptPrivacy *bool
	UpdatedAt     time.Time
}

// Empty reports whether the patch changes no profile field.
func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.PasswordHash == nil && p.AcceptPrivacy == nil
}

// Identity is the authenticated caller resolved from a bearer token.
type Identity struct {
	UserID string
}
