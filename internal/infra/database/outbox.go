package database

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"github.com/ctrlmarket/ctrlmarket/internal/domain/entity"
)

// OutboxEvent is one claimable row of the transactional outbox.
type OutboxEvent struct {
	ID          string
	AggregateID string
	EventType   string
	Payload     []byte
	Topic       string
}

type OutboxStore struct {
	db DBTX
}

func NewOutboxStore(db DBTX) *OutboxStore {
	return &OutboxStore{db: db}
}

// SaveEvent runs inside the same transaction as the state change that
// produced the event.
func (s *OutboxStore) SaveEvent(ctx context.Context, eventID, aggregateID, eventType string, payload []byte, topic string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO outbox_events (event_id, aggregate_id, event_type, payload, topic, status)
		 VALUES ($1, $2, $3, $4, $5, 'pending')`,
		eventID, aggregateID, eventType, payload, topic,
	)
	if err != nil {
		return fmt.Errorf("%w: insert outbox event: %w", entity.ErrStorage, err)
	}
	return nil
}

func (s *OutboxStore) FetchPending(ctx context.Context, limit int32) ([]OutboxEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT event_id, aggregate_id, event_type, payload, topic
		 FROM outbox_events
		 WHERE status = 'pending'
		 ORDER BY created_at
		 LIMIT $1
		 FOR UPDATE SKIP LOCKED`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch outbox events: %w", entity.ErrStorage, err)
	}
	defer rows.Close()

	var events []OutboxEvent
	for rows.Next() {
		var e OutboxEvent
		if err := rows.Scan(&e.ID, &e.AggregateID, &e.EventType, &e.Payload, &e.Topic); err != nil {
			return nil, fmt.Errorf("%w: scan outbox event: %w", entity.ErrStorage, err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: fetch outbox events: %w", entity.ErrStorage, err)
	}
	return events, nil
}

func (s *OutboxStore) MarkProcessing(ctx context.Context, ids []string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE outbox_events SET status = 'processing', claimed_at = now() WHERE event_id = ANY($1)`,
		pq.Array(ids),
	)
	if err != nil {
		return fmt.Errorf("%w: mark outbox processing: %w", entity.ErrStorage, err)
	}
	return nil
}

func (s *OutboxStore) MarkPublished(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE outbox_events SET status = 'published', published_at = now() WHERE event_id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("%w: mark outbox published: %w", entity.ErrStorage, err)
	}
	return nil
}

func (s *OutboxStore) MarkFailed(ctx context.Context, id string, reason string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE outbox_events SET status = 'failed', error_msg = $2 WHERE event_id = $1`,
		id, reason,
	)
	if err != nil {
		return fmt.Errorf("%w: mark outbox failed: %w", entity.ErrStorage, err)
	}
	return nil
}

// ResetStuck returns events claimed long ago but never resolved back to the
// pending pool.
func (s *OutboxStore) ResetStuck(ctx context.Context, olderThan string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE outbox_events SET status = 'pending', claimed_at = NULL
		 WHERE status = 'processing' AND claimed_at < now() - $1::interval`,
		olderThan,
	)
	if err != nil {
		return fmt.Errorf("%w: reset stuck outbox events: %w", entity.ErrStorage, err)
	}
	return nil
}

func (s *OutboxStore) DeleteOld(ctx context.Context, olderThan string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM outbox_events WHERE status = 'published' AND published_at < now() - $1::interval`,
		olderThan,
	)
	if err != nil {
		return fmt.Errorf("%w: delete old outbox events: %w", entity.ErrStorage, err)
	}
	return nil
}
