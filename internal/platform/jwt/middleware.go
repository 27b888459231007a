package jwtmw

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"auction_backend/internal/shared/identity"
)

var errMalformedClaims = errors.New("malformed claims")

// SessionChecker confirms that the session a token was issued for is still live.
type SessionChecker interface {
	VerifySession(ctx context.Context, sessionID string, userID uint) error
}

// Middleware authenticates requests from their bearer token.
type Middleware struct {
	secret   []byte
	sessions SessionChecker
}

// NewMiddleware creates a Middleware. A nil sessions skips the session check.
func NewMiddleware(secret string, sessions SessionChecker) *Middleware {
	return &Middleware{secret: []byte(secret), sessions: sessions}
}

// AuthRequired rejects requests without a valid token.
func (m *Middleware) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		m.authenticate(c, strings.TrimPrefix(auth, "Bearer "))
	}
}

// Optional lets anonymous requests through with identity.Anonymous, but still
// rejects a token that is present and invalid.
func (m *Middleware) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			identity.Set(c, identity.Anonymous)
			c.Next()
			return
		}
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		m.authenticate(c, strings.TrimPrefix(auth, "Bearer "))
	}
}

func (m *Middleware) authenticate(c *gin.Context, tokenStr string) {
	if len(m.secret) == 0 {
		// Server misconfiguration (JWT_SECRET not set)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured"})
		return
	}

	id, err := m.parse(tokenStr)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	if m.sessions != nil {
		if err := m.sessions.VerifySession(c.Request.Context(), id.SessionID, id.UserID); err != nil {
			slog.Warn("token rejected", "error", err, "user_id", id.UserID, "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}
	}

	identity.Set(c, id)
	c.Next()
}

// parse verifies the signature and expiry and extracts the identity claims.
func (m *Middleware) parse(tokenStr string) (identity.Identity, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		// Only HMAC is accepted
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return identity.Identity{}, jwt.ErrTokenInvalidClaims
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return identity.Identity{}, errMalformedClaims
	}
	sub, ok := claims[ClaimSubject].(float64) // JWT numbers are decoded as float64
	if !ok || sub < 1 {
		return identity.Identity{}, errMalformedClaims
	}
	sid, _ := claims[ClaimSession].(string)
	username, _ := claims[ClaimUsername].(string)
	if sid == "" {
		return identity.Identity{}, errMalformedClaims
	}
	return identity.Identity{UserID: uint(sub), Username: username, SessionID: sid}, nil
}
