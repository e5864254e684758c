package services

import (
	"encoding/json"
	"log"

	"equaline/pkg/rabbitmq"
)

// Routing keys of the events published to the broker.
const (
	EventOrderCreated         = "order.created"
	EventCallbackRequested    = "callback.requested"
	EventNewsletterSubscribed = "newsletter.subscribed"
	EventContactMessage       = "contact.message"
)

// EventPublisher sends an event body to an exchange under a routing key.
// *rabbitmq.Client satisfies it.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// publishEvent sends payload as JSON. Publishing is best effort: failures
// are logged and never fail the operation that produced the event.
func publishEvent(publisher EventPublisher, routingKey string, payload interface{}) {
	if publisher == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := publisher.Publish(rabbitmq.EventsExchange, routingKey, body); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", routingKey, err)
		return
	}
	log.Printf("Published %s event", routingKey)
}
