package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/gokhale/internal/config"
	"github.com/example/gokhale/internal/utils"
)

const (
	userContextKey = "currentUserID"
	roleContextKey = "currentRole"
)

func bearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
	}

	return parts[1], nil
}

// AuthMiddleware validates customer JWT tokens and loads the account ID
// into context.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := bearerToken(c)
		if err != nil {
			return err
		}

		id, role, err := utils.ParseToken(cfg.JWTSecret, token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		// Admin and customer ids come from separate sequences; an admin
		// token must never act as the customer sharing its id.
		if role != "user" {
			return fiber.NewError(fiber.StatusForbidden, "customer access only")
		}

		c.Locals(userContextKey, id)
		c.Locals(roleContextKey, role)
		return c.Next()
	}
}

// AdminAuthMiddleware validates admin JWT tokens; non-admin tokens are
// rejected outright.
func AdminAuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := bearerToken(c)
		if err != nil {
			return err
		}

		id, role, err := utils.ParseToken(cfg.JWTSecret, token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		if role != "admin" {
			return fiber.NewError(fiber.StatusForbidden, "admin access only")
		}

		c.Locals(userContextKey, id)
		c.Locals(roleContextKey, role)
		return c.Next()
	}
}

// GetCurrentUserID extracts the authenticated account ID from context.
func GetCurrentUserID(c *fiber.Ctx) (uint, bool) {
	value := c.Locals(userContextKey)
	if value == nil {
		return 0, false
	}

	if id, ok := value.(uint); ok {
		return id, true
	}

	return 0, false
}
