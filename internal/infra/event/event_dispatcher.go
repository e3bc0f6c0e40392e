package event

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"

	"github.com/ctrlmarket/ctrlmarket/pkg/events"
	carrier "github.com/ctrlmarket/ctrlmarket/pkg/otel"
)

const exchange = "amq.direct"

type Dispatcher struct {
	RabbitMQChannel *amqp.Channel
}

func NewDispatcher(ch *amqp.Channel) *Dispatcher {
	return &Dispatcher{RabbitMQChannel: ch}
}

func (ed *Dispatcher) Dispatch(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event.GetPayload())
	if err != nil {
		return err
	}
	return ed.DispatchRaw(ctx, event.GetName(), payload, nil)
}

// DispatchRaw publishes an already-serialized payload. The current trace
// context travels in the AMQP headers so the worker can continue the span.
func (ed *Dispatcher) DispatchRaw(ctx context.Context, routingKey string, payload []byte, extra map[string]string) error {
	headers := make(amqp.Table)
	otel.GetTextMapPropagator().Inject(ctx, carrier.AMQPHeadersCarrier(headers))
	for k, v := range extra {
		headers[k] = v
	}

	return ed.RabbitMQChannel.PublishWithContext(
		ctx,
		exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			Headers:     headers,
			ContentType: "application/json",
			Timestamp:   time.Now(),
			Body:        payload,
		})
}
