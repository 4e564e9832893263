package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/subscription-admin-console/internal/lib/sl"
)

// MaxInFlight сколько сообщений обрабатывается одновременно.
const MaxInFlight = 10

// Handler обрабатывает тело сообщения. Ошибка возвращает сообщение в очередь.
type Handler func(ctx context.Context, body []byte) error

// ConsumeMessages подписывается на очередь и обрабатывает сообщения до отмены ctx.
func ConsumeMessages(ctx context.Context, ch *amqp.Channel, queueName string, handler Handler, log *slog.Logger) error {
	const op = "rabbitmq.ConsumeMessages"
	delivery, err := ch.Consume(
		queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	go dispatch(ctx, delivery, handler, log)
	return nil
}

// dispatch раздаёт сообщения обработчикам, не больше MaxInFlight одновременно.
func dispatch(ctx context.Context, delivery <-chan amqp.Delivery, handler Handler, log *slog.Logger) {
	const op = "rabbitmq.dispatch"
	sem := make(chan struct{}, MaxInFlight)
	for {
		select {
		case d, ok := <-delivery:
			if !ok {
				return
			}
			sem <- struct{}{}
			go func(d amqp.Delivery) {
				defer func() { <-sem }()
				if err := handler(ctx, d.Body); err != nil {
					log.Warn("message handling failed, requeue", sl.Op(op), sl.Err(err))
					if nackErr := d.Nack(false, true); nackErr != nil {
						log.Error("failed to nack message", sl.Op(op), sl.Err(nackErr))
					}
					return
				}
				if ackErr := d.Ack(false); ackErr != nil {
					log.Error("failed to ack message", sl.Op(op), sl.Err(ackErr))
				}
			}(d)
		case <-ctx.Done():
			return
		}
	}
}
