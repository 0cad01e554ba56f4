// Package kafka carries gateway events to Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
)

// Event is one message waiting to be written.
type Event struct {
	Topic     string
	Key       string
	EventType string
	RequestID string
	Payload   []byte
}

// NewEvent encodes payload as JSON.
func NewEvent(topic, key, eventType, requestID string, payload any) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("kafka: encode %s: %w", eventType, err)
	}
	return Event{Topic: topic, Key: key, EventType: eventType, RequestID: requestID, Payload: raw}, nil
}

// Publisher hands events off for delivery. Publish must not block the caller
// on the broker.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NoopPublisher drops every event; used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }
