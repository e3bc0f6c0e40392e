package event

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ctrlmarket/ctrlmarket/pkg/logger"
	carrier "github.com/ctrlmarket/ctrlmarket/pkg/otel"
)

// Consumer drains one queue and hands each delivery to a MessageHandler
// chain. Handler failure nacks with requeue; poison messages are the
// wrappers' problem, not the consumer's.
type Consumer struct {
	Conn   *amqp.Connection
	Logger logger.Logger
}

func NewConsumer(conn *amqp.Connection, l logger.Logger) *Consumer {
	return &Consumer{Conn: conn, Logger: l}
}

func (c *Consumer) Start(ctx context.Context, queueName, routingKey string, handler MessageHandler) error {
	ch, err := c.Conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := c.setupTopology(ch, queueName, routingKey); err != nil {
		return fmt.Errorf("error when configuring topology: %w", err)
	}

	msgs, err := ch.Consume(
		queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	c.Logger.Info(ctx, "[*] Waiting for messages", logger.String("queue", queueName))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("delivery channel closed for queue %s", queueName)
			}
			c.handleDelivery(queueName, d, handler)
		}
	}
}

func (c *Consumer) handleDelivery(queueName string, d amqp.Delivery, handler MessageHandler) {
	amqpCarrier := carrier.AMQPHeadersCarrier(d.Headers)
	ctx := otel.GetTextMapPropagator().Extract(context.Background(), amqpCarrier)

	tracer := otel.GetTracerProvider().Tracer("worker-tracer")
	ctx, span := tracer.Start(ctx, "ProcessMessage", trace.WithAttributes(
		attribute.String("queue.name", queueName),
		attribute.String("messaging.routing_key", d.RoutingKey),
	))
	defer span.End()

	c.Logger.Debug(ctx, "Received message from queue",
		logger.String("queue", queueName),
	)

	if err := handler(ctx, d.Body, d.Headers); err != nil {
		c.Logger.Warn(ctx, "Handler failed, requeueing message",
			logger.String("queue", queueName),
			logger.WithError(err),
		)
		span.RecordError(err)
		d.Nack(false, true)
		return
	}

	d.Ack(false)
}

func (c *Consumer) setupTopology(ch *amqp.Channel, queueName, routingKey string) error {
	_, err := ch.QueueDeclare(
		queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}
	return ch.QueueBind(queueName, routingKey, exchange, false, nil)
}
