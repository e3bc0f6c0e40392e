package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ctrlmarket/ctrlmarket/internal/application/usecase/order"
	"github.com/ctrlmarket/ctrlmarket/internal/application/usecase/request"
	"github.com/ctrlmarket/ctrlmarket/pkg/logger"
)

// Notification handlers are the worker-side consumers of the outbox topics.
// Delivery here means a customer- or specialist-facing notification; today
// that is a structured log line, the seam for email or push later.

func NewOrderCreatedHandler(log logger.Logger) MessageHandler {
	return func(ctx context.Context, msg []byte, headers map[string]interface{}) error {
		var out order.Output
		if err := json.Unmarshal(msg, &out); err != nil {
			return fmt.Errorf("unmarshal order.created payload: %w", err)
		}

		log.Info(ctx, "Order confirmation sent",
			logger.Int64("order_id", out.ID),
			logger.Int64("customer_id", out.CustomerID),
			logger.String("total", out.Total),
		)
		return nil
	}
}

func NewOrderCompletedHandler(log logger.Logger) MessageHandler {
	return func(ctx context.Context, msg []byte, headers map[string]interface{}) error {
		var out order.Output
		if err := json.Unmarshal(msg, &out); err != nil {
			return fmt.Errorf("unmarshal order.completed payload: %w", err)
		}

		log.Info(ctx, "Order completion notice sent",
			logger.Int64("order_id", out.ID),
			logger.Int64("customer_id", out.CustomerID),
		)
		return nil
	}
}

func NewRequestAssignedHandler(log logger.Logger) MessageHandler {
	return func(ctx context.Context, msg []byte, headers map[string]interface{}) error {
		var out request.Output
		if err := json.Unmarshal(msg, &out); err != nil {
			return fmt.Errorf("unmarshal request.assigned payload: %w", err)
		}

		fields := []logger.Field{
			logger.Int64("request_id", out.ID),
			logger.Int64("customer_id", out.CustomerID),
			logger.String("service_type", out.ServiceType),
		}
		if out.SpecialistID != nil {
			fields = append(fields, logger.Int64("specialist_id", *out.SpecialistID))
		}

		log.Info(ctx, "Assignment notice sent", fields...)
		return nil
	}
}
