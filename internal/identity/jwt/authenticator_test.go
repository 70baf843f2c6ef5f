package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/opshive/orgtree/internal/domain"
	"github.com/opshive/orgtree/internal/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthenticator(d time.Duration) *Authenticator {
	return NewAuthenticator(Config{
		SecretKey:     "test-secret-key",
		TokenDuration: d,
	})
}

func TestAuthenticator_RoundTrip(t *testing.T) {
	auth := newTestAuthenticator(15 * time.Minute)
	account := &domain.Account{ID: "account-123", Role: domain.RoleAdmin}

	token, err := auth.Issue(context.Background(), account)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	accountID, err := auth.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "account-123", accountID)
}

func TestAuthenticator_ExpiredToken(t *testing.T) {
	auth := newTestAuthenticator(-1 * time.Minute)
	account := &domain.Account{ID: "account-123", Role: domain.RoleUser}

	token, err := auth.Issue(context.Background(), account)
	require.NoError(t, err)

	_, err = auth.Verify(context.Background(), token)
	assert.ErrorIs(t, err, identity.ErrInvalidToken)
}

func TestAuthenticator_WrongSecret(t *testing.T) {
	auth := newTestAuthenticator(15 * time.Minute)
	other := NewAuthenticator(Config{SecretKey: "other-secret", TokenDuration: 15 * time.Minute})

	token, err := auth.Issue(context.Background(), &domain.Account{ID: "account-123"})
	require.NoError(t, err)

	_, err = other.Verify(context.Background(), token)
	assert.ErrorIs(t, err, identity.ErrInvalidToken)
}

func TestAuthenticator_MalformedToken(t *testing.T) {
	auth := newTestAuthenticator(15 * time.Minute)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := auth.Verify(context.Background(), token)
		assert.ErrorIs(t, err, identity.ErrInvalidToken, "token %q", token)
	}
}

func TestAuthenticator_TamperedToken(t *testing.T) {
	auth := newTestAuthenticator(15 * time.Minute)

	token, err := auth.Issue(context.Background(), &domain.Account{ID: "account-123"})
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = auth.Verify(context.Background(), tampered)
	assert.ErrorIs(t, err, identity.ErrInvalidToken)
}
