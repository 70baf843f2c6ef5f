// Package jwt implements the identity token authenticator on top of signed
// HS256 JSON Web Tokens.
package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/opshive/orgtree/internal/domain"
	"github.com/opshive/orgtree/internal/identity"
)

// Config contains authenticator configuration.
type Config struct {
	SecretKey     string
	TokenDuration time.Duration
}

// Authenticator issues and verifies HS256 access tokens. The signing secret
// is set once at startup and never rotated while the process runs.
type Authenticator struct {
	secretKey     []byte
	tokenDuration time.Duration
}

var _ identity.Authenticator = (*Authenticator)(nil)

// NewAuthenticator creates a new JWT authenticator.
func NewAuthenticator(cfg Config) *Authenticator {
	return &Authenticator{
		secretKey:     []byte(cfg.SecretKey),
		tokenDuration: cfg.TokenDuration,
	}
}

type claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Issue creates a signed token bound to the account id. The token is a pure
// function of the account, the current time and the process secret.
func (a *Authenticator) Issue(_ context.Context, account *domain.Account) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.tokenDuration)),
		},
	})

	signed, err := token.SignedString(a.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token and returns the account id it was
// issued for. Malformed structure, a bad signature and expiry all collapse
// into identity.ErrInvalidToken.
func (a *Authenticator) Verify(_ context.Context, tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secretKey, nil
	})
	if err != nil || !token.Valid {
		return "", identity.ErrInvalidToken
	}

	c, ok := token.Claims.(*claims)
	if !ok || c.Subject == "" {
		return "", identity.ErrInvalidToken
	}

	return c.Subject, nil
}
