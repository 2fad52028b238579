// Package noop provides an event publisher that drops everything, used
// when event publishing is disabled or no bus is configured.
package noop

import (
	"context"

	"advicehub-backend/application/ports"
	"advicehub-backend/domain/events"
)

// Publisher discards every event
type Publisher struct{}

// NewPublisher creates a no-op publisher
func NewPublisher() ports.EventPublisher {
	return Publisher{}
}

// Publish does nothing
func (Publisher) Publish(ctx context.Context, event events.DomainEvent) error {
	return nil
}
