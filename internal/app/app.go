package app

import (
	"time"

	"equaline/internal/config"
	"equaline/internal/handlers"
	"equaline/internal/middleware"
	"equaline/internal/models"
	"equaline/internal/repositories"
	"equaline/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// Deps is what the application is built from.
type Deps struct {
	Config    *config.Config
	Store     repositories.KeyValueStore
	Products  []models.Product
	Publisher services.EventPublisher // nil disables events

	// CheckoutOptions are appended after the ones derived from Config.
	CheckoutOptions []services.CheckoutOption
	// DisableRequestLog turns off the access log middleware.
	DisableRequestLog bool
}

// New wires repositories, services and handlers into a Fiber app.
func New(deps Deps) (*fiber.App, error) {
	cfg := deps.Config

	// --- Repositories ---
	productRepo, err := repositories.NewCatalogRepository(deps.Products)
	if err != nil {
		return nil, err
	}
	blobs := repositories.NewBlobStore(deps.Store)
	cartRepo := repositories.NewBlobCartRepository(blobs)
	userRepo := repositories.NewBlobUserRepository(blobs)
	sessionRepo := repositories.NewBlobSessionRepository(blobs)
	orderRepo := repositories.NewBlobOrderRepository(blobs)
	contactRepo := repositories.NewBlobContactRepository(blobs)

	// --- Services ---
	productService := services.NewProductService(productRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	authService := services.NewAuthService(userRepo, sessionRepo, cfg.JWTSecret,
		services.WithTokenDuration(cfg.VisitorTokenTTL),
		services.WithPasswordHashing(cfg.HashPasswords),
	)
	orderService := services.NewOrderService(orderRepo, deps.Publisher)
	checkoutOpts := append([]services.CheckoutOption{
		services.WithProcessingDelay(cfg.CheckoutProcessingDelay),
		services.WithOrderNumberPrefix(cfg.OrderNumberPrefix),
	}, deps.CheckoutOptions...)
	checkoutService := services.NewCheckoutService(cartRepo, sessionRepo, orderService, checkoutOpts...)
	contactService := services.NewContactService(contactRepo, deps.Publisher)

	// --- Fiber App ---
	app := fiber.New()
	if !deps.DisableRequestLog {
		app.Use(logger.New())
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"store":  cfg.StoreDriver,
			"events": deps.Publisher != nil,
		})
	})

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")

	// Public routes
	handlers.NewVisitorHandler(authService).RegisterRoutes(apiV1)
	handlers.NewProductHandler(productService).RegisterRoutes(apiV1)

	// Routes scoped to a visitor
	visitorRoutes := apiV1.Group("", middleware.VisitorRequired(authService))
	handlers.NewCartHandler(cartService).RegisterRoutes(visitorRoutes)
	handlers.NewAuthHandler(authService).RegisterRoutes(visitorRoutes)
	handlers.NewCheckoutHandler(checkoutService).RegisterRoutes(visitorRoutes)
	handlers.NewOrderHandler(orderService, authService).RegisterRoutes(visitorRoutes)
	handlers.NewContactHandler(contactService).RegisterRoutes(visitorRoutes)

	return app, nil
}
