package domain

import "time"

// Account is the role-neutral view of a credential row. Students and teachers
// live in separate tables; ids are unique only within their own role.
//
// Security notes:
//   - RefreshTokenHash stores a SHA-256 digest of the currently valid refresh
//     token, never the raw token. Nil means no active session.
//   - At most one refresh token is honored per account: a new login overwrites
//     the hash and silently invalidates the previous session.
type Account struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	Role          Role   `json:"role"`
	Class         string `json:"class,omitempty"`
	Div           string `json:"div,omitempty"`
	Batch         string `json:"batch,omitempty"`
	EmailVerified bool   `json:"email_verified"`

	PasswordHash          string     `json:"-"`
	RefreshTokenHash      *string    `json:"-"`
	RefreshTokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Account) HasActiveSession(now time.Time) bool {
	return a.RefreshTokenHash != nil &&
		a.RefreshTokenExpiresAt != nil &&
		a.RefreshTokenExpiresAt.After(now)
}

// Principal is the authenticated identity attached to a request. It is decoded
// from access-token claims only and never persisted.
type Principal struct {
	ID   int64 `json:"id"`
	Role Role  `json:"role"`
}
