package auth

import (
	"context"
	"time"

	"upasthit/internal/domain"
)

// AccountStore is the per-role credential store surface the session manager
// needs: one row read and single-UPDATE session writes. Students and teachers
// each provide one; the service picks between them on the closed Role enum.
type AccountStore interface {
	GetAccount(ctx context.Context, id int64) (*domain.Account, error)
	SetRefreshToken(ctx context.Context, id int64, hash string, expiresAt time.Time) error
	ClearRefreshToken(ctx context.Context, id int64) error
}

// StudentStore — students sign in by roll number
type StudentStore interface {
	AccountStore
	GetByRollNo(ctx context.Context, rollNo int64) (*domain.Account, error)
}

// TeacherStore — teachers sign in by email
type TeacherStore interface {
	AccountStore
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
}
