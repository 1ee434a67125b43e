package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"upasthit/internal/domain"

	"gorm.io/gorm"
)

const (
	codeTTL        = 5 * time.Minute
	maxAttempts    = 5
	maxResends     = 3
	resendCooldown = 60 * time.Second
)

// Service runs email verification for students: attach an address, mail a
// short-lived code, confirm it. One pending code per student; a new Send
// replaces the old code and its counters.
type Service struct {
	store    OTPStore
	students StudentEmails
	mailer   Mailer
}

func NewService(store OTPStore, students StudentEmails, mailer Mailer) *Service {
	return &Service{
		store:    store,
		students: students,
		mailer:   mailer,
	}
}

func (s *Service) Send(ctx context.Context, rollNo int64, email string) error {
	taken, err := s.students.EmailTakenByOther(ctx, email, rollNo)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailTaken
	}

	// Attach unverified; verification flips the flag.
	if err := s.students.SetEmail(ctx, rollNo, email, false); err != nil {
		return err
	}

	code, err := generateCode()
	if err != nil {
		return err
	}

	now := time.Now()
	pending := &domain.EmailOTP{
		StudentRollNo: rollNo,
		Email:         email,
		Code:          code,
		LastSentAt:    now,
		ExpiresAt:     now.Add(codeTTL),
	}
	if err := s.store.Replace(ctx, pending); err != nil {
		return err
	}

	return s.mailer.Send(ctx, email, "Your Upasthit verification code",
		fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, int(codeTTL.Minutes())))
}

func (s *Service) Verify(ctx context.Context, rollNo int64, code string) error {
	pending, err := s.store.GetByStudent(ctx, rollNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoPendingOTP
		}
		return err
	}

	if pending.IsExpired(time.Now()) {
		return ErrCodeExpired
	}
	if pending.Attempts >= maxAttempts {
		return ErrTooManyAttempts
	}
	if pending.Code != code {
		if err := s.store.IncrementAttempts(ctx, pending.ID); err != nil {
			return err
		}
		return ErrCodeMismatch
	}

	if err := s.students.MarkEmailVerified(ctx, rollNo); err != nil {
		return err
	}
	return s.store.Delete(ctx, pending.ID)
}

func (s *Service) Resend(ctx context.Context, rollNo int64) error {
	pending, err := s.store.GetByStudent(ctx, rollNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoPendingOTP
		}
		return err
	}

	now := time.Now()
	if pending.Resends >= maxResends {
		return ErrResendLimit
	}
	if now.Sub(pending.LastSentAt) < resendCooldown {
		return ErrResendCooldown
	}

	if err := s.store.MarkResent(ctx, pending.ID, now, now.Add(codeTTL)); err != nil {
		return err
	}

	return s.mailer.Send(ctx, pending.Email, "Your Upasthit verification code",
		fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", pending.Code, int(codeTTL.Minutes())))
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
