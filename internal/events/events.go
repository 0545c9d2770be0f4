// Package events defines the messages the API publishes to Kafka and the
// publisher the domain services use to emit them.
package events

//go:generate go run go.uber.org/mock/mockgen -source=./events.go -destination=./mocks/events_mock.go -package=mocks

import (
	"context"
	"sparkle/config"
	"sparkle/infras/kafka"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	BookingCreated       = "booking.created"
	BookingStatusChanged = "booking.status_changed"
	PaymentDisputeOpened = "payment.dispute_opened"
)

// BookingEvent is keyed by booking id so every change of one booking lands on the
// same partition, in order.
type BookingEvent struct {
	Kind         string    `json:"kind"`
	BookingID    string    `json:"booking_id"`
	CustomerID   string    `json:"customer_id"`
	BusinessID   string    `json:"business_id"`
	From         string    `json:"from,omitempty"`
	To           string    `json:"to"`
	ActorRole    string    `json:"actor_role"`
	Actor        string    `json:"actor"`
	Reason       string    `json:"reason,omitempty"`
	RefundStatus string    `json:"refund_status,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type DisputeAlert struct {
	Kind            string    `json:"kind"`
	EventID         string    `json:"event_id"`
	DisputeID       string    `json:"dispute_id"`
	ChargeID        string    `json:"charge_id"`
	PaymentIntentID string    `json:"payment_intent_id"`
	BookingID       string    `json:"booking_id,omitempty"`
	Amount          int64     `json:"amount"`
	Currency        string    `json:"currency"`
	Reason          string    `json:"reason"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// Publisher emits domain events. Delivery is best effort: a failure is logged and
// never fails the operation that produced the event.
type Publisher interface {
	PublishBooking(ctx context.Context, event BookingEvent)
	PublishDispute(ctx context.Context, alert DisputeAlert)
}

type publisherImpl struct {
	client       kafka.Client
	bookingTopic string
	alertTopic   string
}

func NewPublisher(cfg *config.Config, client kafka.Client) Publisher {
	return &publisherImpl{
		client:       client,
		bookingTopic: cfg.Kafka.Topics.BookingEvents,
		alertTopic:   cfg.Kafka.Topics.PaymentAlerts,
	}
}

func (p *publisherImpl) PublishBooking(ctx context.Context, event BookingEvent) {
	if err := p.client.SendMessages(ctx, p.bookingTopic, kafka.Message{Key: event.BookingID, Value: event}); err != nil {
		log.Error().Err(err).Str("booking_id", event.BookingID).Str("kind", event.Kind).Msg("failed to publish booking event")
	}
}

func (p *publisherImpl) PublishDispute(ctx context.Context, alert DisputeAlert) {
	if err := p.client.SendMessages(ctx, p.alertTopic, kafka.Message{Key: alert.PaymentIntentID, Value: alert}); err != nil {
		log.Error().Err(err).Str("dispute_id", alert.DisputeID).Msg("failed to publish dispute alert")
	}
}
