package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the auth routes. The credential endpoints are
// public but rate limited per client IP; /me requires a valid token.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, rateLimitMiddleware gin.HandlerFunc) {
	authGroup := g.Group("/auth")
	{
		authGroup.POST("/register", rateLimitMiddleware, h.Register)
		authGroup.POST("/login", rateLimitMiddleware, h.Login)
		authGroup.GET("/me", authMiddleware, h.Me)
	}
}
