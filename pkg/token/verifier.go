// Package token resolves bearer credentials to owner identities.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidToken = errors.New("invalid token")

// Verifier turns a bearer token into a stable owner id.
type Verifier interface {
	Verify(token string) (string, error)
}

type jwtVerifier struct {
	secret []byte
	issuer string
}

// NewJWTVerifier verifies HS256-signed tokens. The subject claim is the
// owner id. The issuer is only enforced when non-empty.
func NewJWTVerifier(secret, issuer string) Verifier {
	return &jwtVerifier{
		secret: []byte(secret),
		issuer: issuer,
	}
}

func (v *jwtVerifier) Verify(tokenString string) (string, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return claims.Subject, nil
}

// Mint signs a token for the given owner, for the token subcommand and tests.
func Mint(secret, issuer, ownerID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   ownerID,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

type staticVerifier struct {
	tokenHash []byte
	ownerID   string
}

// NewStaticVerifier accepts a single pre-shared token, checked against its
// bcrypt hash, and maps it to a fixed owner. Meant for single-owner
// self-hosted setups without an identity provider.
func NewStaticVerifier(tokenHash, ownerID string) Verifier {
	return &staticVerifier{
		tokenHash: []byte(tokenHash),
		ownerID:   ownerID,
	}
}

func (v *staticVerifier) Verify(tokenString string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(v.tokenHash, []byte(tokenString)); err != nil {
		return "", ErrInvalidToken
	}
	return v.ownerID, nil
}
