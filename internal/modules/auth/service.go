package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"upasthit/internal/domain"
	"upasthit/internal/pkg/token"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type tokenCodec interface {
	IssueAccess(accountID int64, role domain.Role) (string, error)
	IssueRefresh(accountID int64, role domain.Role) (string, error)
	VerifyRefresh(raw string) (*token.Claims, error)
	RefreshTTL() time.Duration
}

// Service is the session manager: login, refresh, and logout, plus the
// profile lookup behind /validateUser. Per-account session state is a single
// refresh-token hash on the account row, so state transitions are one UPDATE
// each and a fresh login always supersedes the previous session.
type Service struct {
	students StudentStore
	teachers TeacherStore
	tokens   tokenCodec
}

type LoginResult struct {
	Account      *domain.Account
	AccessToken  string
	RefreshToken string
}

func NewService(students StudentStore, teachers TeacherStore, tokens tokenCodec) *Service {
	return &Service{
		students: students,
		teachers: teachers,
		tokens:   tokens,
	}
}

// storeFor resolves the credential store for a role. Anything outside the
// closed enum is rejected before a query can be built from it.
func (s *Service) storeFor(role domain.Role) (AccountStore, error) {
	switch role {
	case domain.RoleStudent:
		return s.students, nil
	case domain.RoleTeacher:
		return s.teachers, nil
	}
	return nil, ErrUnauthorized
}

func (s *Service) Login(ctx context.Context, req SignInRequest) (*LoginResult, error) {
	var (
		account *domain.Account
		err     error
	)
	switch {
	case req.RollNumber != 0:
		account, err = s.students.GetByRollNo(ctx, req.RollNumber)
	case req.Email != "":
		account, err = s.teachers.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	default:
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokens.IssueAccess(account.ID, account.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.IssueRefresh(account.ID, account.Role)
	if err != nil {
		return nil, err
	}

	store, err := s.storeFor(account.Role)
	if err != nil {
		return nil, err
	}

	// Single UPDATE keyed by account id. Overwrites any prior session hash:
	// the losing side of a concurrent login fails on its next refresh.
	expiresAt := time.Now().Add(s.tokens.RefreshTTL())
	if err := store.SetRefreshToken(ctx, account.ID, token.Hash(refreshToken), expiresAt); err != nil {
		return nil, err
	}

	account.PasswordHash = ""
	return &LoginResult{
		Account:      account,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The refresh
// token itself is not rotated; it stays live until its original expiry or
// until a later login or logout replaces the persisted hash.
func (s *Service) Refresh(ctx context.Context, raw string) (string, error) {
	if raw == "" {
		return "", ErrMissingToken
	}

	claims, err := s.tokens.VerifyRefresh(raw)
	if err != nil {
		return "", ErrUnauthorized
	}

	store, err := s.storeFor(claims.Role)
	if err != nil {
		return "", err
	}

	account, err := store.GetAccount(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUnauthorized
		}
		return "", err
	}

	// The persisted expiry is checked on its own even though it was written
	// from the same clock as the token's embedded expiry.
	if !account.HasActiveSession(time.Now()) {
		return "", ErrUnauthorized
	}
	if subtle.ConstantTimeCompare([]byte(*account.RefreshTokenHash), []byte(token.Hash(raw))) != 1 {
		return "", ErrUnauthorized
	}

	return s.tokens.IssueAccess(account.ID, account.Role)
}

// Logout clears the persisted session if the presented token resolves to one.
// Idempotent: missing, malformed, and already-cleared tokens are all no-ops.
func (s *Service) Logout(ctx context.Context, raw string) error {
	if raw == "" {
		return nil
	}

	claims, err := s.tokens.VerifyRefresh(raw)
	if err != nil {
		return nil
	}

	store, err := s.storeFor(claims.Role)
	if err != nil {
		return nil
	}

	return store.ClearRefreshToken(ctx, claims.AccountID)
}

func (s *Service) CurrentAccount(ctx context.Context, principal domain.Principal) (*domain.Account, error) {
	store, err := s.storeFor(principal.Role)
	if err != nil {
		return nil, err
	}

	account, err := store.GetAccount(ctx, principal.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	account.PasswordHash = ""
	return account, nil
}
