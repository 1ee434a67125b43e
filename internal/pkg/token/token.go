package token

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"upasthit/internal/domain"
)

// Verification failures. Callers outside the auth layer must surface both the
// same way; the distinction exists for logging only.
var (
	ErrExpired = errors.New("token expired")
	ErrInvalid = errors.New("token invalid")
)

type Claims struct {
	AccountID int64       `json:"account_id"`
	Role      domain.Role `json:"role"`
	jwtlib.RegisteredClaims
}

// Codec issues and verifies the two token kinds. Access and refresh tokens are
// signed with separate secrets so a leak of one key cannot forge the other kind.
type Codec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewCodec(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Codec {
	return &Codec{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (c *Codec) AccessTTL() time.Duration  { return c.accessTTL }
func (c *Codec) RefreshTTL() time.Duration { return c.refreshTTL }

func (c *Codec) IssueAccess(accountID int64, role domain.Role) (string, error) {
	return c.issue(accountID, role, c.accessSecret, c.accessTTL, "")
}

func (c *Codec) IssueRefresh(accountID int64, role domain.Role) (string, error) {
	return c.issue(accountID, role, c.refreshSecret, c.refreshTTL, uuid.NewString())
}

func (c *Codec) issue(accountID int64, role domain.Role, secret []byte, ttl time.Duration, jti string) (string, error) {
	now := time.Now()
	claims := Claims{
		AccountID: accountID,
		Role:      role,
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
			ID:        jti,
		},
	}

	t := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

func (c *Codec) VerifyAccess(raw string) (*Claims, error) {
	return verify(raw, c.accessSecret)
}

func (c *Codec) VerifyRefresh(raw string) (*Claims, error) {
	return verify(raw, c.refreshSecret)
}

func verify(raw string, secret []byte) (*Claims, error) {
	t, err := jwtlib.ParseWithClaims(raw, &Claims{}, func(t *jwtlib.Token) (any, error) {
		return secret, nil
	}, jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}

	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return nil, ErrInvalid
	}
	return claims, nil
}

// Hash is the digest persisted for refresh-token comparison. Raw refresh
// tokens never reach the database; access tokens are never hashed or stored.
func Hash(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
