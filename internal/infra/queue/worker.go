package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/ghostreach/internal/entity"
	"github.com/xavierca1/ghostreach/internal/logger"
)

// Deliverer performs the actual delivery of a queued message.
type Deliverer interface {
	Send(ctx context.Context, msg entity.OutreachMessage) error
}

// Consumer is satisfied by *amqp.Channel.
type Consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// Worker relays queued outreach messages to a Deliverer.
type Worker struct {
	Channel   Consumer
	Deliverer Deliverer
	log       logger.Logger
}

func NewWorker(ch Consumer, d Deliverer, log logger.Logger) *Worker {
	return &Worker{Channel: ch, Deliverer: d, log: log}
}

// Start consumes queueName until ctx is cancelled or the channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	w.log.Info("Relay worker waiting for messages", logger.String("queue", queueName))

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			w.handle(ctx, d)
		}
	}
}

func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	var msg entity.OutreachMessage
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		w.log.Error("Discarding malformed message", logger.Error(err))
		// no requeue: goes to the DLQ
		_ = d.Nack(false, false)
		return
	}

	if err := w.Deliverer.Send(ctx, msg); err != nil {
		w.log.Error("Relay delivery failed",
			logger.String("message_id", msg.ID),
			logger.String("to", msg.To),
			logger.Error(err),
		)
		_ = d.Nack(false, false)
		return
	}

	w.log.Info("Relayed message", logger.String("message_id", msg.ID), logger.String("to", msg.To))
	_ = d.Ack(false)
}
