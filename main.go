package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"equaline/internal/app"
	"equaline/internal/config"
	"equaline/internal/models"
	"equaline/internal/repositories"
	"equaline/internal/services"
	"equaline/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Storage ---
	store, closeStore, err := repositories.OpenKeyValueStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.StoreDriver, err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Printf("Error closing store: %v", err)
		}
	}()

	// --- Events (optional) ---
	var publisher services.EventPublisher
	if mqClient := connectRabbitMQ(cfg.RabbitMQURL); mqClient != nil {
		defer mqClient.Close()
		publisher = mqClient
	}

	// --- Fiber App ---
	fiberApp, err := app.New(app.Deps{
		Config:    cfg,
		Store:     store,
		Products:  seedProducts(),
		Publisher: publisher,
	})
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := fiberApp.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := fiberApp.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// connectRabbitMQ returns nil when url is empty or the broker is unreachable;
// the storefront works without events.
func connectRabbitMQ(url string) *rabbitmq.Client {
	if url == "" {
		log.Println("RABBITMQ_URL not set, event publishing disabled")
		return nil
	}
	mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: url})
	if err != nil {
		log.Printf("Warning: RabbitMQ unavailable, event publishing disabled: %v", err)
		return nil
	}

	log.Println("Starting RabbitMQ consumer for orders...")
	if err := mqClient.ConsumeOrderEvents(logOrderEvent); err != nil {
		log.Printf("Failed to start RabbitMQ consumer: %v", err)
	}
	return mqClient
}

func logOrderEvent(ev rabbitmq.OrderEvent) error {
	log.Printf("Received order event: %s for %s, total %d (%s)", ev.OrderNumber, ev.Email, ev.Total, ev.Status)
	return nil
}

// seedProducts returns the catalog the storefront is started with.
func seedProducts() []models.Product {
	products := repositories.DefaultCatalog()
	for _, p := range products {
		log.Printf("Seeded product: %s (ID: %d)", p.Name, p.ID)
	}
	return products
}
