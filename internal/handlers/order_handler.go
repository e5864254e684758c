package handlers

import (
	"equaline/internal/middleware"
	"equaline/internal/models"
	"equaline/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler serves the signed-in user's order history.
type OrderHandler struct {
	service     *services.OrderService
	authService *services.AuthService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService, authService *services.AuthService) *OrderHandler {
	return &OrderHandler{
		service:     service,
		authService: authService,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:number", h.HandleGetOrder)
}

func (h *OrderHandler) session(c *fiber.Ctx) *models.Session {
	return h.authService.CurrentUser(c.UserContext(), middleware.VisitorID(c))
}

func signInRequired(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": services.ErrAuthRequired.Error(),
	})
}

// HandleGetOrders lists the orders placed with the session's email.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	session := h.session(c)
	if session == nil {
		return signInRequired(c)
	}
	return c.JSON(h.service.GetOrdersFor(c.UserContext(), session.Email))
}

// HandleGetOrder returns one of the session's orders by number.
func (h *OrderHandler) HandleGetOrder(c *fiber.Ctx) error {
	session := h.session(c)
	if session == nil {
		return signInRequired(c)
	}
	order, err := h.service.GetOrderByNumber(c.UserContext(), c.Params("number"), session.Email)
	if err != nil {
		return respondError(c, "retrieve order", err)
	}
	return c.JSON(order)
}
