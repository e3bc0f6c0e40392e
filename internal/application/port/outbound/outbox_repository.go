package outbound

import "context"

type OutboxRepository interface {
	// SaveEvent records a domain event in the same transaction as the state
	// change that produced it; the relay publishes it later.
	SaveEvent(ctx context.Context, eventID, aggregateID, eventType string, payload []byte, topic string) error
}
