package middleware

import (
	"facility-backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const sessionContextKey = "session_context"

// SessionContext carries the authenticated caller's identity and tenant scope.
// Authentication itself happens upstream; every handler and service receives
// this value explicitly instead of reading ambient state.
type SessionContext struct {
	UserEmail      string
	OrganizationID uuid.UUID
}

// RequireSession resolves the session context from the authenticated request
// and rejects requests that carry no usable identity.
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := c.Get("X-User-Email")
		orgID := c.Get("X-Organization-ID")
		if email == "" || orgID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Missing session identity",
				"data":    nil,
				"error":   "unauthenticated",
			})
		}

		parsedOrg, err := uuid.Parse(orgID)
		if err != nil {
			config.Logger.Warn("Rejected request with malformed organization ID", zap.String("org_id", orgID))
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid organization identifier",
				"data":    nil,
				"error":   err.Error(),
			})
		}

		c.Locals(sessionContextKey, SessionContext{
			UserEmail:      email,
			OrganizationID: parsedOrg,
		})
		return c.Next()
	}
}

// SessionFromCtx retrieves the session context stored by RequireSession.
func SessionFromCtx(c *fiber.Ctx) SessionContext {
	if sc, ok := c.Locals(sessionContextKey).(SessionContext); ok {
		return sc
	}
	return SessionContext{}
}
