package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velourluxe/storefront/internal/domain"
)

func newTestManager(ttl time.Duration) *TokenManager {
	return NewTokenManager(TokenConfig{
		Issuer:   "VelourLuxe",
		Secret:   "test-secret",
		TokenTTL: ttl,
	})
}

func TestSignParseRoundtrip(t *testing.T) {
	m := newTestManager(time.Hour)

	token, exp, err := m.Sign(12345, domain.RoleCustomer)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(12345), claims.UserID)
	assert.Equal(t, domain.RoleCustomer, claims.Role)
	assert.Equal(t, "VelourLuxe", claims.Issuer)
}

func TestParseExpiredToken(t *testing.T) {
	m := newTestManager(-time.Minute)

	token, _, err := m.Sign(1, domain.RoleCustomer)
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTamperedToken(t *testing.T) {
	m := newTestManager(time.Hour)

	token, _, err := m.Sign(1, domain.RoleCustomer)
	require.NoError(t, err)

	// flip a character in the signature segment
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	parts[2] = string(sig)

	_, err = m.Parse(strings.Join(parts, "."))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseWrongSecret(t *testing.T) {
	m := newTestManager(time.Hour)
	other := NewTokenManager(TokenConfig{Issuer: "VelourLuxe", Secret: "other-secret", TokenTTL: time.Hour})

	token, _, err := other.Sign(1, domain.RoleAdmin)
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseGarbage(t *testing.T) {
	m := newTestManager(time.Hour)
	_, err := m.Parse("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
