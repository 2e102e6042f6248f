package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/salonhq/scheduler-api/internal/session"
)

// Activity resets the idle clock for the authenticated session. Every request
// that reaches here counts as a qualifying input event; the session monitor's
// tick observes the same shared activity cell this touches.
func Activity(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if v, ok := c.Get(ContextStaffID); ok {
			if staffID, ok := v.(uuid.UUID); ok {
				sessions.Touch(staffID)
			}
		}
		c.Next()
	}
}
