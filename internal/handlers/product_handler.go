package handlers

import (
	"equaline/internal/models"
	"equaline/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the catalog.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/:id", h.HandleGetProduct)
}

// productView is a product together with its display icon.
type productView struct {
	models.Product
	Icon string `json:"icon"`
}

func toViews(products []models.Product) []productView {
	views := make([]productView, len(products))
	for i, p := range products {
		views[i] = productView{Product: p, Icon: services.ProductIcon(p)}
	}
	return views
}

// HandleListProducts returns the catalog filtered by ?search= and ordered by ?sort=.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.service.Browse(c.Query("search"), services.SortKey(c.Query("sort")))
	if err != nil {
		return respondError(c, "retrieve products", err)
	}
	return c.JSON(fiber.Map{
		"products": toViews(products),
		"count":    len(products),
	})
}

// HandleGetProduct returns a single product.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	id, ok := productIDParam(c)
	if !ok {
		return invalidProductID(c)
	}
	product, err := h.service.GetProductByID(id)
	if err != nil {
		return respondError(c, "retrieve product", err)
	}
	return c.JSON(productView{Product: *product, Icon: services.ProductIcon(*product)})
}
