package otp

import "errors"

var (
	ErrEmailTaken      = errors.New("email already associated with another account")
	ErrNoPendingOTP    = errors.New("no pending verification")
	ErrCodeExpired     = errors.New("verification code expired")
	ErrCodeMismatch    = errors.New("verification code does not match")
	ErrTooManyAttempts = errors.New("too many failed attempts")
	ErrResendLimit     = errors.New("resend limit reached")
	ErrResendCooldown  = errors.New("resend requested too soon")
)
