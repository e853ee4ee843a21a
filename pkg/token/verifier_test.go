package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestJWTVerifierRoundTrip(t *testing.T) {
	signed, err := Mint("secret", "pwaforge", "owner-1", time.Hour)
	assert.NoError(t, err)

	ownerID, err := NewJWTVerifier("secret", "pwaforge").Verify(signed)
	assert.NoError(t, err)
	assert.Equal(t, "owner-1", ownerID)
}

func TestJWTVerifierRejectsWrongSecret(t *testing.T) {
	signed, err := Mint("secret", "pwaforge", "owner-1", time.Hour)
	assert.NoError(t, err)

	_, err = NewJWTVerifier("other", "pwaforge").Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTVerifierRejectsExpired(t *testing.T) {
	signed, err := Mint("secret", "pwaforge", "owner-1", -time.Hour)
	assert.NoError(t, err)

	_, err = NewJWTVerifier("secret", "pwaforge").Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTVerifierRejectsWrongIssuer(t *testing.T) {
	signed, err := Mint("secret", "somebody-else", "owner-1", time.Hour)
	assert.NoError(t, err)

	_, err = NewJWTVerifier("secret", "pwaforge").Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTVerifierRejectsMissingSubject(t *testing.T) {
	signed, err := Mint("secret", "pwaforge", "", time.Hour)
	assert.NoError(t, err)

	_, err = NewJWTVerifier("secret", "pwaforge").Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTVerifierRejectsGarbage(t *testing.T) {
	_, err := NewJWTVerifier("secret", "pwaforge").Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestStaticVerifier(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("pre-shared"), bcrypt.MinCost)
	assert.NoError(t, err)

	v := NewStaticVerifier(string(hash), "owner-static")

	ownerID, err := v.Verify("pre-shared")
	assert.NoError(t, err)
	assert.Equal(t, "owner-static", ownerID)

	_, err = v.Verify("wrong")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
