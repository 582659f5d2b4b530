package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSigner(t *testing.T, secret, issuer string) *Signer {
	t.Helper()
	s, err := NewSigner(secret, issuer, time.Hour)
	require.NoError(t, err)
	return s
}

func TestSignAndVerify(t *testing.T) {
	s := newTestSigner(t, "s3cret", "provenderie")
	tok, err := s.Sign("clerk")
	require.NoError(t, err)

	c, err := s.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "clerk", c.Role)
	assert.Equal(t, "clerk", c.Subject)
	assert.Equal(t, "provenderie", c.Issuer)
	assert.NotEmpty(t, c.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), c.ExpiresAt.Time, 5*time.Second)
}

func TestVerify_Rejections(t *testing.T) {
	s := newTestSigner(t, "s3cret", "provenderie")
	tok, err := s.Sign("admin")
	require.NoError(t, err)

	_, err = newTestSigner(t, "other", "provenderie").Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken, "firma con otra clave")

	_, err = newTestSigner(t, "s3cret", "otro-emisor").Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken, "emisor distinto")

	_, err = s.Verify("no.es.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	s := newTestSigner(t, "s3cret", "provenderie")
	s.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, err := s.Sign("admin")
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	s := newTestSigner(t, "s3cret", "")
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		Role:             "admin",
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	_, err = s.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewSigner(t *testing.T) {
	_, err := NewSigner("", "x", time.Minute)
	assert.ErrorIs(t, err, ErrNoSecret)

	s, err := NewSigner("k", "", 0)
	require.NoError(t, err)
	assert.Equal(t, 8*time.Hour, s.TTL())
}
