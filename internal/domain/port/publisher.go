package port

import (
	"context"

	"github.com/nwbc/credit-decision-service/internal/domain/event"
)

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// PayloadCache stores raw provider payloads between evaluations so repeated
// lookups for the same applicant can skip the provider round trip.
type PayloadCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte) error
}
