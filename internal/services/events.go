package services

import (
	"encoding/json"
	"log"
	"time"
)

// Routing keys of the events published after successful mutations.
const (
	EventAccountCreated = "account.created"
	EventAccountDeleted = "account.deleted"
	EventRecipeCreated  = "recipe.created"
	EventRecipeDeleted  = "recipe.deleted"
)

// EventPublisher delivers a serialized event. *rabbitmq.Client implements it.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// publishEvent never fails the caller: the mutation has already committed.
func publishEvent(publisher EventPublisher, routingKey string, payload map[string]interface{}) {
	if publisher == nil {
		return
	}
	payload["event"] = routingKey
	payload["occurred_at"] = time.Now().UTC().Format(time.RFC3339)

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := publisher.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
		return
	}
	log.Printf("Published %s event", routingKey)
}
