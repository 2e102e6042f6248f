package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/salonhq/scheduler-api/internal/model"
	"github.com/salonhq/scheduler-api/internal/session"
	"github.com/salonhq/scheduler-api/pkg/auth"
)

const (
	ContextStaffID = "staff_id"
	ContextClaims  = "claims"
	ContextToken   = "token"
)

type AuthMiddleware struct {
	tokens   auth.TokenService
	sessions *session.Manager
}

func NewAuthMiddleware(tokens auth.TokenService, sessions *session.Manager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, sessions: sessions}
}

// Authenticate validates the bearer token and requires a live (not idled-out)
// session for the staff member it names.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Code:    http.StatusUnauthorized,
				Message: "missing bearer token",
			})
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		claims, err := m.tokens.Validate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Code:    http.StatusUnauthorized,
				Message: "invalid or expired token",
			})
			return
		}

		if _, err := m.sessions.Get(claims.StaffID); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Code:    http.StatusUnauthorized,
				Message: "session expired due to inactivity",
			})
			return
		}

		c.Set(ContextStaffID, claims.StaffID)
		c.Set(ContextClaims, claims)
		c.Set(ContextToken, token)
		c.Next()
	}
}

// RequireRole gates admin-only routes.
func (m *AuthMiddleware) RequireRole(roles ...model.StaffRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(ContextClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Code:    http.StatusUnauthorized,
				Message: "authentication required",
			})
			return
		}
		claims := v.(*model.TokenClaims)
		for _, r := range roles {
			if claims.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
			Code:    http.StatusForbidden,
			Message: "insufficient role",
		})
	}
}
