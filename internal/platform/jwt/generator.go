// Package jwtmw issues HS256 access tokens and verifies them in gin middleware.
package jwtmw

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claim names carried by access tokens.
const (
	ClaimSubject   = "sub"
	ClaimSession   = "sid"
	ClaimUsername  = "username"
	ClaimIssuedAt  = "iat"
	ClaimExpiresAt = "exp"
)

// Generator signs access tokens.
type Generator struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// NewGenerator creates a new JWT generator with the provided secret and expiration duration.
func NewGenerator(secret string, expiration time.Duration) *Generator {
	return &Generator{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
}

// GenerateToken creates a signed token bound to sessionID.
func (g *Generator) GenerateToken(userID uint, username, sessionID string) (string, error) {
	now := g.now()
	claims := jwt.MapClaims{
		ClaimSubject:   userID,
		ClaimSession:   sessionID,
		ClaimUsername:  username,
		ClaimIssuedAt:  now.Unix(),
		ClaimExpiresAt: now.Add(g.expiration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
