// Package token issues and verifies the signed bearer tokens carried in the
// session cookie. Tokens are HS256 JWTs with a userId and role claim and a
// bounded lifetime; there is no issuer/audience validation and no key
// rotation.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rollcall/attendance-system/internal/core/domain"
)

// DefaultTTL is the token lifetime when none is supplied.
const DefaultTTL = 24 * time.Hour

var (
	// ErrNoSecret is returned when signing is attempted without a secret.
	// Signing with no key is never permitted.
	ErrNoSecret = errors.New("token: signing secret is not set")

	// ErrInvalid covers every verification failure: malformed token, bad
	// signature, expired, or undecodable claims.
	ErrInvalid = errors.New("token: invalid")
)

// Claims is the payload carried by a bearer token.
type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Issue signs a token for the given user identity. ttl <= 0 means DefaultTTL.
func Issue(userID string, role domain.Role, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrNoSecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Verify checks the signature and expiry and returns the decoded claims.
func Verify(tokenString, secret string) (*Claims, error) {
	if secret == "" {
		return nil, ErrInvalid
	}

	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, ErrInvalid
	}

	return claims, nil
}
