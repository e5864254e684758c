package handlers

import (
	"equaline/internal/middleware"
	"equaline/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the visitor's cart.
type CartHandler struct {
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service: service,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Put("/items/:id", h.HandleSetQuantity)
	cartRoutes.Delete("/items/:id", h.HandleRemoveItem)
	cartRoutes.Post("/checkout", h.HandleCheckoutHandoff)
}

// AddItemRequest is the body of POST /cart/items.
type AddItemRequest struct {
	ProductID int `json:"product_id"`
}

// SetQuantityRequest is the body of PUT /cart/items/:id.
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// HandleGetCart returns the cart with its totals.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	return c.JSON(h.service.GetCart(c.UserContext(), middleware.VisitorID(c)))
}

// HandleAddItem adds one unit of a product. Unknown products are ignored.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	summary, err := h.service.AddToCart(c.UserContext(), middleware.VisitorID(c), req.ProductID)
	if err != nil {
		return respondError(c, "add to cart", err)
	}
	return c.JSON(summary)
}

// HandleSetQuantity sets a line's quantity. Zero or less removes the line.
func (h *CartHandler) HandleSetQuantity(c *fiber.Ctx) error {
	id, ok := productIDParam(c)
	if !ok {
		return invalidProductID(c)
	}
	var req SetQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	summary, err := h.service.SetQuantity(c.UserContext(), middleware.VisitorID(c), id, req.Quantity)
	if err != nil {
		return respondError(c, "update cart", err)
	}
	return c.JSON(summary)
}

// HandleRemoveItem removes a line from the cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	id, ok := productIDParam(c)
	if !ok {
		return invalidProductID(c)
	}
	summary, err := h.service.RemoveFromCart(c.UserContext(), middleware.VisitorID(c), id)
	if err != nil {
		return respondError(c, "remove from cart", err)
	}
	return c.JSON(summary)
}

// HandleCheckoutHandoff stages the cart for the checkout page.
func (h *CartHandler) HandleCheckoutHandoff(c *fiber.Ctx) error {
	summary, err := h.service.StageForCheckout(c.UserContext(), middleware.VisitorID(c))
	if err != nil {
		return respondError(c, "stage cart", err)
	}
	return c.JSON(fiber.Map{
		"cart":     summary,
		"redirect": "/checkout",
	})
}
