package handlers

import (
	"equaline/internal/middleware"
	"equaline/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/logout", h.HandleLogout)
	authRoutes.Get("/me", h.HandleMe)
}

// HandleRegister handles new user registration and signs the visitor in.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var in services.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}

	session, err := h.authService.Register(c.UserContext(), middleware.VisitorID(c), in)
	if err != nil {
		return respondError(c, "register user", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    session,
	})
}

// HandleLogin signs the visitor in.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var in services.LoginInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}

	session, err := h.authService.Login(c.UserContext(), middleware.VisitorID(c), in)
	if err != nil {
		return respondError(c, "log in", err)
	}
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    session,
	})
}

// HandleLogout ends the visitor's session.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	if err := h.authService.Logout(c.UserContext(), middleware.VisitorID(c)); err != nil {
		return respondError(c, "log out", err)
	}
	return c.JSON(fiber.Map{
		"message": "Logged out",
	})
}

// HandleMe returns the signed-in user, or null.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"user": h.authService.CurrentUser(c.UserContext(), middleware.VisitorID(c)),
	})
}
