package handlers

import (
	"equaline/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ContactHandler handles callback requests, contact messages and newsletter sign-ups.
type ContactHandler struct {
	service *services.ContactService
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(service *services.ContactService) *ContactHandler {
	return &ContactHandler{
		service: service,
	}
}

// RegisterRoutes registers the contact routes with the Fiber app.
func (h *ContactHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/callbacks", h.HandleRequestCallback)
	router.Post("/contact", h.HandleSendMessage)
	router.Post("/newsletter", h.HandleSubscribe)
}

// HandleRequestCallback records a "call me back" request.
func (h *ContactHandler) HandleRequestCallback(c *fiber.Ctx) error {
	var req services.CallbackRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	callback, err := h.service.RequestCallback(c.UserContext(), req)
	if err != nil {
		return respondError(c, "save callback request", err)
	}
	return c.Status(fiber.StatusCreated).JSON(callback)
}

// HandleSendMessage accepts a message from the contact page.
func (h *ContactHandler) HandleSendMessage(c *fiber.Ctx) error {
	var msg services.ContactMessage
	if err := c.BodyParser(&msg); err != nil {
		return badBody(c, err)
	}
	sent, err := h.service.SendMessage(c.UserContext(), msg)
	if err != nil {
		return respondError(c, "send message", err)
	}
	return c.Status(fiber.StatusAccepted).JSON(sent)
}

// HandleSubscribe adds an email to the newsletter.
func (h *ContactHandler) HandleSubscribe(c *fiber.Ctx) error {
	var req services.SubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	sub, err := h.service.Subscribe(c.UserContext(), req.Email)
	if err != nil {
		return respondError(c, "subscribe", err)
	}
	return c.Status(fiber.StatusCreated).JSON(sub)
}
