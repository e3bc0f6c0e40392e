package event

import (
	"context"
	"database/sql"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ctrlmarket/ctrlmarket/internal/infra/database"
	"github.com/ctrlmarket/ctrlmarket/pkg/events"
	"github.com/ctrlmarket/ctrlmarket/pkg/logger"
	"github.com/ctrlmarket/ctrlmarket/pkg/metrics"
)

// OutboxRelay drains the transactional outbox and republishes its rows to the
// broker. Claiming happens in a short transaction; the network I/O runs
// outside it, fanned out over a bounded worker pool.
type OutboxRelay struct {
	store      *database.OutboxStore
	dbConn     *sql.DB
	dispatcher events.EventDispatcher
	logger     logger.Logger
	metrics    metrics.Metrics
	batchSize  int32
	workers    int
}

func NewOutboxRelay(conn *sql.DB, disp events.EventDispatcher, log logger.Logger, m metrics.Metrics) *OutboxRelay {
	return &OutboxRelay{
		store:      database.NewOutboxStore(conn),
		dbConn:     conn,
		dispatcher: disp,
		logger:     log,
		metrics:    m,
		batchSize:  100,
		workers:    10,
	}
}

func (r *OutboxRelay) Run(ctx context.Context) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.processBatch(ctx)
		}
	}
}

func (r *OutboxRelay) processBatch(ctx context.Context) {
	eventsToProcess, err := r.fetchAndClaim(ctx)
	if err != nil {
		if err != sql.ErrNoRows {
			r.logger.Error(ctx, "Failed to fetch outbox batch", logger.WithError(err))
		}
		return
	}

	if len(eventsToProcess) == 0 {
		return
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for _, evt := range eventsToProcess {
		evt := evt
		g.Go(func() error {
			return r.processSingleEvent(gCtx, evt)
		})
	}

	if err := g.Wait(); err != nil {
		r.logger.Error(ctx, "Outbox batch had errors", logger.WithError(err))
	}
}

// fetchAndClaim marks a batch as processing inside one short transaction so
// concurrent relays never claim the same rows.
func (r *OutboxRelay) fetchAndClaim(ctx context.Context) ([]database.OutboxEvent, error) {
	tx, err := r.dbConn.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	txStore := database.NewOutboxStore(tx)

	pending, err := txStore.FetchPending(ctx, r.batchSize)
	if err != nil {
		return nil, err
	}

	if len(pending) == 0 {
		return nil, nil
	}

	ids := make([]string, len(pending))
	for i, e := range pending {
		ids[i] = e.ID
	}

	if err := txStore.MarkProcessing(ctx, ids); err != nil {
		return nil, err
	}
	return pending, tx.Commit()
}

func (r *OutboxRelay) processSingleEvent(ctx context.Context, evt database.OutboxEvent) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	headers := map[string]string{
		"x-event-id":     evt.ID,
		"x-event-type":   evt.EventType,
		"x-aggregate-id": evt.AggregateID,
	}

	err := r.dispatcher.DispatchRaw(ctx, evt.Topic, evt.Payload, headers)

	// Status updates run against a fresh context so a cancelled publish does
	// not strand the row in processing.
	if err != nil {
		r.logger.Warn(ctx, "Failed to publish event",
			logger.String("id", evt.ID),
			logger.String("topic", evt.Topic),
			logger.WithError(err))

		r.metrics.IncOutboxEventsProcessed("failed")
		return r.store.MarkFailed(context.Background(), evt.ID, err.Error())
	}

	r.metrics.IncOutboxEventsProcessed("published")
	return r.store.MarkPublished(context.Background(), evt.ID)
}

// RunRescuer periodically returns stranded processing rows to the pending
// pool and prunes old published rows.
func (r *OutboxRelay) RunRescuer(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.store.ResetStuck(ctx, "5 minutes"); err != nil {
				r.logger.Error(ctx, "Failed to reset stuck events", logger.WithError(err))
			}

			if err := r.store.DeleteOld(ctx, "7 days"); err != nil {
				r.logger.Error(ctx, "Outbox cleanup failed", logger.WithError(err))
			}
		}
	}
}
