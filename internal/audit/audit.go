// Package audit публикует события аудита консоли: вход, выход и истечение
// сессии, а также чувствительные действия администратора над пользователями
// и промокодами.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/subscription-admin-console/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/subscription-admin-console/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-admin-console/internal/session"
)

// Виды событий.
const (
	KindSessionPrefix      = "session."
	KindUserBlock          = "user.block"
	KindUserUnblock        = "user.unblock"
	KindSubscriptionGrant  = "subscription.grant"
	KindSubscriptionReduce = "subscription.reduce"
	KindSubscriptionRevoke = "subscription.revoke"
	KindPromoCreate        = "promo.create"
	KindPromoDelete        = "promo.delete"
	KindPaymentLink        = "payment.link"
)

// Event событие аудита.
type Event struct {
	ID         string         `json:"id"`
	Kind       string         `json:"kind"`
	AdminID    int64          `json:"adminId,omitempty"`
	AdminEmail string         `json:"adminEmail,omitempty"`
	Target     string         `json:"target,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	At         time.Time      `json:"at"`
}

// Publisher отправляет события аудита.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// AMQPPublisher публикует события в exchange RabbitMQ.
type AMQPPublisher struct {
	ch         rabbitmq.Channel
	exchange   string
	routingKey string
}

// NewAMQPPublisher создаёт публикатор поверх канала.
func NewAMQPPublisher(ch rabbitmq.Channel, exchange, routingKey string) *AMQPPublisher {
	return &AMQPPublisher{ch: ch, exchange: exchange, routingKey: routingKey}
}

// Publish дополняет событие идентификатором и временем, если их нет, и публикует его.
func (p *AMQPPublisher) Publish(_ context.Context, e Event) error {
	const op = "audit.Publish"
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	if err := rabbitmq.PublishMessage(p.ch, p.exchange, p.routingKey, e); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// NopPublisher используется, когда аудит выключен.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

// SessionObserver превращает события сессии в события аудита.
// Ошибки публикации только логируются: аудит не должен ломать вход и выход.
func SessionObserver(p Publisher, log *slog.Logger) session.Observer {
	return func(ctx context.Context, e session.Event) {
		ev := Event{
			Kind: KindSessionPrefix + string(e.Reason),
			At:   e.At.UTC(),
		}
		if e.Admin != nil {
			ev.AdminID = e.Admin.ID
			ev.AdminEmail = e.Admin.Email
		}
		if err := p.Publish(ctx, ev); err != nil {
			log.Error("failed to publish session event", sl.Op("audit.SessionObserver"), sl.Err(err))
		}
	}
}
