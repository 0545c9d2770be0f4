// Package consumer runs the Kafka side of the system: it turns booking events into
// notifications for the other party.
package consumer

import (
	"context"
	"fmt"
	"sparkle/config"
	"sparkle/infras/kafka"
	"sparkle/internal/domains/notification/service"
	"sparkle/internal/events"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const defaultConsumerGroup = "sparkle-notifier"

type Consumer struct {
	cfg           *config.Config
	client        kafka.Client
	notifications service.Notification
}

func New(cfg *config.Config, client kafka.Client, notifications service.Notification) *Consumer {
	return &Consumer{
		cfg:           cfg,
		client:        client,
		notifications: notifications,
	}
}

// Run blocks until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	group := c.cfg.Kafka.ConsumerGroup
	if group == "" {
		group = defaultConsumerGroup
	}

	log.Info().Str("topic", c.cfg.Kafka.Topics.BookingEvents).Str("group", group).Msg("Starting booking event consumer.")

	if err := c.client.Consume(ctx, group, c.cfg.Kafka.Topics.BookingEvents, c.HandleBookingEvent); err != nil {
		return fmt.Errorf("consume booking events: %w", err)
	}

	return nil
}

// HandleBookingEvent drops messages that cannot be decoded; a retry would fail the same way.
func (c *Consumer) HandleBookingEvent(ctx context.Context, message kafkaGo.Message) error {
	event, err := kafka.Decode[events.BookingEvent](message)
	if err != nil {
		log.Error().Err(err).Str("key", string(message.Key)).Msg("Dropping undecodable booking event.")

		return nil
	}

	return c.notifications.HandleBookingEvent(ctx, event) //nolint:wrapcheck
}

func (c *Consumer) Close() error {
	return c.client.Close() //nolint:wrapcheck
}
