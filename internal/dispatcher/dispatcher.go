// Package dispatcher delivers lifecycle side effects to the notification
// sink, email sender and payment-gateway worker over the message broker.
// Dispatch is fire-and-forget: it runs detached from the request, holds no
// database locks, and only logs failures.
package dispatcher

import (
	"context"
	"log"
	"time"

	"github.com/eventlify/booking-engine/internal/effects"
)

// Publisher is satisfied by pkg/rabbitmq.Publisher.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

type AMQPDispatcher struct {
	publisher Publisher
	timeout   time.Duration
}

func NewAMQPDispatcher(publisher Publisher) *AMQPDispatcher {
	return &AMQPDispatcher{publisher: publisher, timeout: 5 * time.Second}
}

func (d *AMQPDispatcher) Dispatch(effs []effects.Effect) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		for _, eff := range effs {
			if err := d.publisher.Publish(ctx, eff.RoutingKey(), eff); err != nil {
				log.Printf("[Dispatcher] failed to publish %s: %v", eff.RoutingKey(), err)
			}
		}
	}()
}
