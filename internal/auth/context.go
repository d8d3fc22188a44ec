package auth

import "github.com/gin-gonic/gin"

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetRole returns the authenticated user's normalized role, or the empty
// Role if the request is unauthenticated.
func GetRole(c *gin.Context) Role {
	if v, ok := c.Get("userRole"); ok {
		if r, ok := v.(Role); ok {
			return r
		}
	}
	return Role("")
}

// Actor identifies the authenticated caller of a service operation.
type Actor struct {
	UserID string
	Role   Role
}

// GetActor builds an Actor from the gin context.
func GetActor(c *gin.Context) Actor {
	return Actor{
		UserID: GetUserID(c),
		Role:   GetRole(c),
	}
}
