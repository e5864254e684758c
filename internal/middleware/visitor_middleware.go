package middleware

import (
	"log"
	"strings"

	"equaline/internal/services"

	"github.com/gofiber/fiber/v2"
)

// VisitorIDKey is the Fiber local holding the authenticated visitor id.
const VisitorIDKey = "visitor_id"

// VisitorRequired is a Fiber middleware that resolves the visitor from the
// bearer token issued by POST /api/v1/visitors.
func VisitorRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			log.Printf("Visitor token validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
				"error":   err.Error(),
			})
		}

		c.Locals(VisitorIDKey, claims["visitor_id"])
		return c.Next()
	}
}

// VisitorID returns the visitor id stored by VisitorRequired.
func VisitorID(c *fiber.Ctx) string {
	id, _ := c.Locals(VisitorIDKey).(string)
	return id
}
