package otp

import (
	"context"
	"time"

	"upasthit/internal/domain"
)

// OTPStore — one pending code per student
type OTPStore interface {
	Replace(ctx context.Context, o *domain.EmailOTP) error
	GetByStudent(ctx context.Context, rollNo int64) (*domain.EmailOTP, error)
	IncrementAttempts(ctx context.Context, id int64) error
	MarkResent(ctx context.Context, id int64, sentAt time.Time, expiresAt time.Time) error
	Delete(ctx context.Context, id int64) error
}

// StudentEmails is the slice of the student store the OTP flow touches.
type StudentEmails interface {
	EmailTakenByOther(ctx context.Context, email string, rollNo int64) (bool, error)
	SetEmail(ctx context.Context, rollNo int64, email string, verified bool) error
	MarkEmailVerified(ctx context.Context, rollNo int64) error
}

// Mailer delivers the code. Transport lives outside this module.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
