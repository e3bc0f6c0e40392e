package event

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/ctrlmarket/ctrlmarket/pkg/logger"
)

type RedisIdempotencyStore interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
	Del(ctx context.Context, key string) error
}

// WrapIdempotency drops duplicate deliveries keyed by x-event-id. Fail
// closed: if the store is unavailable, the message is nacked rather than
// risking a double notification.
func WrapIdempotency(
	log logger.Logger,
	store RedisIdempotencyStore,
	handlerName string,
	ttl time.Duration,
	next MessageHandler,
) MessageHandler {

	return func(ctx context.Context, msg []byte, headers map[string]interface{}) error {

		var eventID string

		if v, ok := headers["x-event-id"]; ok {
			eventID = fmt.Sprintf("%v", v)
		}

		if eventID == "" {
			hash := sha256.Sum256(msg)
			eventID = fmt.Sprintf("hash:%x", hash)
		}

		key := fmt.Sprintf("dedup:%s:%s", handlerName, eventID)

		saved, err := store.SetNX(ctx, key, "processing", ttl)

		if err != nil {
			log.Error(ctx, "Redis unavailable for idempotency check",
				logger.WithError(err))

			return fmt.Errorf("idempotency store unavailable: %w", err)
		}

		if !saved {
			log.Info(ctx, "Duplicate event dropped by idempotency guard",
				logger.String("handler", handlerName),
				logger.String("event_id", eventID),
			)
			return nil
		}

		err = next(ctx, msg, headers)

		if err != nil {
			log.Warn(ctx, "Handler logic failed, releasing lock for retry",
				logger.String("key", key),
				logger.WithError(err),
			)

			// Releasing the key lets the requeued delivery try again.
			if delErr := store.Del(ctx, key); delErr != nil {
				log.Error(ctx, "Failed to release idempotency lock",
					logger.String("key", key),
					logger.WithError(delErr),
				)
			}
		}

		return err
	}
}
