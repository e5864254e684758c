package handlers

import (
	"errors"
	"log"
	"strconv"

	"equaline/internal/repositories"
	"equaline/internal/services"

	"github.com/gofiber/fiber/v2"
)

// respondError maps a service error onto the HTTP response.
func respondError(c *fiber.Ctx, action string, err error) error {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  verr.Fields,
		})
	}

	var authErr *services.AuthError
	if errors.As(err, &authErr) {
		status := fiber.StatusUnauthorized
		body := fiber.Map{
			"message": authErr.Error(),
			"errors":  fiber.Map{authErr.Field: authErr.Error()},
		}
		switch {
		case errors.Is(err, services.ErrDuplicateEmail):
			status = fiber.StatusConflict
		case errors.Is(err, services.ErrAuthRequired):
			body["state"] = services.StateBlocked
		}
		return c.Status(status).JSON(body)
	}

	switch {
	case errors.Is(err, services.ErrCartEmpty):
		c.Location(services.CatalogPath)
		return c.Status(fiber.StatusSeeOther).JSON(fiber.Map{
			"message":  err.Error(),
			"state":    services.StateRedirect,
			"redirect": services.CatalogPath,
		})
	case errors.Is(err, services.ErrSubmissionInProgress), errors.Is(err, services.ErrAlreadySubscribed):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrOrderNotFound), errors.Is(err, repositories.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	log.Printf("Error %s: %v", action, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Could not " + action,
		"error":   err.Error(),
	})
}

func badBody(c *fiber.Ctx, err error) error {
	log.Printf("Error parsing request body: %v", err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

// productIDParam reads the :id path parameter as a product id.
func productIDParam(c *fiber.Ctx) (int, bool) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return 0, false
	}
	return id, true
}

func invalidProductID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid product ID",
	})
}
