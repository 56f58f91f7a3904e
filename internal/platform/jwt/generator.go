// Package jwtmw issues and verifies the HS256 bearer tokens used for
// authentication.
package jwtmw

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by Parse for any token that cannot be
// accepted: bad signature, malformed structure, wrong algorithm or expired.
// Callers treat all of these identically.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the token payload. It embeds the public user projection as it
// was at login time; consumers must re-fetch the live record by email and
// use the embedded fields for lookup only.
type Claims struct {
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	IsVerified bool      `json:"is_verified"`
	Plants     []string  `json:"plants"`
	CreatedAt  time.Time `json:"created_at"`
	jwt.RegisteredClaims
}

// Profile is the snapshot of a user embedded into a token.
type Profile struct {
	ID         uint
	Name       string
	Email      string
	IsVerified bool
	PlantIDs   []string
	CreatedAt  time.Time
}

// Codec defines the interface for issuing and verifying bearer tokens.
type Codec interface {
	// Generate creates a signed token embedding the given profile.
	Generate(p Profile) (string, error)
	// Parse verifies a token and returns its claims.
	// It returns ErrInvalidToken for any unacceptable token.
	Parse(token string) (*Claims, error)
}

// codec implements the Codec interface with an HS256 shared secret.
type codec struct {
	secret     []byte
	expiration time.Duration
}

// NewCodec creates a new token codec with the provided secret and token
// lifetime. A non-positive lifetime issues tokens without an exp claim.
func NewCodec(secret string, expiration time.Duration) Codec {
	return &codec{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// Generate creates a signed JWT embedding the user profile snapshot.
func (c *codec) Generate(p Profile) (string, error) {
	now := time.Now()
	claims := Claims{
		Name:       p.Name,
		Email:      p.Email,
		IsVerified: p.IsVerified,
		Plants:     p.PlantIDs,
		CreatedAt:  p.CreatedAt,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  strconv.FormatUint(uint64(p.ID), 10),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if c.expiration > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(c.expiration))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Parse verifies the signature and expiry of a token and returns its claims.
func (c *codec) Parse(tokenStr string) (*Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		// Check signing algorithm (only HMAC allowed)
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
