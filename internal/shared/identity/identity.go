// Package identity carries the authenticated caller through a request.
package identity

import "github.com/gin-gonic/gin"

// contextKey is the gin context key holding the caller's Identity.
const contextKey = "identity"

// Identity is the caller of a single request. The zero value is an anonymous caller.
type Identity struct {
	UserID    uint
	Username  string
	SessionID string
}

// Anonymous is the identity of a caller without a token.
var Anonymous = Identity{}

// Authenticated reports whether the identity belongs to a logged-in user.
func (i Identity) Authenticated() bool {
	return i.UserID != 0
}

// Set stores the identity on the gin context.
func Set(c *gin.Context, id Identity) {
	c.Set(contextKey, id)
}

// FromContext returns the identity stored by the auth middleware, or Anonymous.
func FromContext(c *gin.Context) Identity {
	v, ok := c.Get(contextKey)
	if !ok {
		return Anonymous
	}
	id, ok := v.(Identity)
	if !ok {
		return Anonymous
	}
	return id
}
