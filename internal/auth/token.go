package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: bad signature, expired,
// malformed claims. Callers get no finer detail, so the 401 message cannot
// leak which part of the token failed.
var ErrInvalidToken = errors.New("invalid or expired token")

// Tokens issues and verifies bearer tokens for authenticated requests.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

type claims struct {
	UserID int64 `json:"userId"`
	jwt.RegisteredClaims
}

// NewTokens creates a token issuer/verifier with the given signing secret and
// token lifetime.
func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token carrying the user id, expiring after the configured TTL.
func (t *Tokens) Issue(userID int64) (string, error) {
	now := time.Now()
	c := claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a bearer token, returning the user id it was
// issued for.
func (t *Tokens) Verify(tokenString string) (int64, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid || c.UserID == 0 {
		return 0, ErrInvalidToken
	}
	return c.UserID, nil
}
