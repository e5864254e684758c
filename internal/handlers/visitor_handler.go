package handlers

import (
	"equaline/internal/services"

	"github.com/gofiber/fiber/v2"
)

// VisitorHandler issues visitor tokens. A visitor token stands in for the
// browser profile that owns a cart and a session.
type VisitorHandler struct {
	authService *services.AuthService
}

// NewVisitorHandler creates a new VisitorHandler.
func NewVisitorHandler(authService *services.AuthService) *VisitorHandler {
	return &VisitorHandler{authService: authService}
}

// RegisterRoutes registers the visitor routes with the Fiber app.
func (h *VisitorHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/visitors", h.HandleNewVisitor)
}

// HandleNewVisitor creates a visitor and returns its bearer token.
func (h *VisitorHandler) HandleNewVisitor(c *fiber.Ctx) error {
	token, visitorID, err := h.authService.IssueVisitorToken()
	if err != nil {
		return respondError(c, "issue visitor token", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token":      token,
		"visitor_id": visitorID,
	})
}
