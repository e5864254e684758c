package handlers

import (
	"equaline/internal/middleware"
	"equaline/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler handles HTTP requests for the checkout page.
type CheckoutHandler struct {
	service *services.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
	}
}

// RegisterRoutes registers the checkout routes with the Fiber app.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	checkoutRoutes := router.Group("/checkout")
	checkoutRoutes.Get("/", h.HandleBegin)
	checkoutRoutes.Post("/", h.HandleSubmit)
}

// HandleBegin returns the checkout view. An empty cart redirects to the catalog.
func (h *CheckoutHandler) HandleBegin(c *fiber.Ctx) error {
	view := h.service.Begin(c.UserContext(), middleware.VisitorID(c))
	if view.State == services.StateRedirect {
		c.Location(view.Redirect)
		return c.Status(fiber.StatusSeeOther).JSON(view)
	}
	return c.JSON(view)
}

// HandleSubmit places the order. The request blocks for the processing delay.
func (h *CheckoutHandler) HandleSubmit(c *fiber.Ctx) error {
	var form services.CheckoutForm
	if err := c.BodyParser(&form); err != nil {
		return badBody(c, err)
	}

	order, err := h.service.Submit(c.UserContext(), middleware.VisitorID(c), form)
	if err != nil {
		return respondError(c, "place order", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order placed",
		"state":   services.StateSubmitted,
		"order":   order,
		"total":   order.Total(),
	})
}
