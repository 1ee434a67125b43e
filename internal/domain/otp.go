package domain

import "time"

// EmailOTP is a pending email-verification code for a student. One row per
// student at a time; sending a new code replaces the old one.
type EmailOTP struct {
	ID            int64     `json:"id"`
	StudentRollNo int64     `json:"student_rollno"`
	Email         string    `json:"email"`
	Code          string    `json:"-"`
	Attempts      int       `json:"attempts"`
	Resends       int       `json:"resends"`
	LastSentAt    time.Time `json:"last_sent_at"`
	ExpiresAt     time.Time `json:"expires_at"`
	CreatedAt     time.Time `json:"created_at"`
}

func (o *EmailOTP) IsExpired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}
