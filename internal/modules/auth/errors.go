package auth

import "errors"

// Internal taxonomy. The HTTP layer collapses everything here to a generic
// 401 so callers cannot tell a missing account from a wrong password or an
// expired token from a forged one.
var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingToken       = errors.New("missing token")
	ErrUnauthorized       = errors.New("unauthorized")
)
