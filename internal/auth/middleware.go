package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fsdcampus/campus-booking-backend/internal/pkg/apperror"
	"github.com/fsdcampus/campus-booking-backend/internal/pkg/response"
)

// AuthRequired is a Gin middleware that validates JWT from Authorization: Bearer <token>
func AuthRequired(jwtManager *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.AbortError(c, apperror.New(apperror.KindUnauthorized, "missing Authorization header"))
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.AbortError(c, apperror.New(apperror.KindUnauthorized, "invalid Authorization header format"))
			return
		}

		claims, err := jwtManager.ParseAndValidate(parts[1])
		if err != nil {
			response.AbortError(c, apperror.New(apperror.KindUnauthorized, "invalid or expired token"))
			return
		}

		role := NormalizeRole(claims.Role)
		if !role.Valid() {
			response.AbortError(c, apperror.New(apperror.KindUnauthorized, "unknown role in token"))
			return
		}

		// Store identity into Gin context for later handlers.
		c.Set("userID", claims.UserID)
		c.Set("userRole", role)

		c.Next()
	}
}

// RequireCapability ensures the authenticated user's role holds the given
// capability. It MUST be used after AuthRequired.
func RequireCapability(cap Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		if !Can(role, cap) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorResponse{
				Error: "permission denied",
				Kind:  string(apperror.KindForbidden),
			})
			return
		}
		c.Next()
	}
}
