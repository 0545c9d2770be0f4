package events_test

import (
	"context"
	"errors"
	"sparkle/config"
	"sparkle/infras/kafka"
	kafkaMocks "sparkle/infras/kafka/mocks"
	"sparkle/internal/events"
	"testing"

	"go.uber.org/mock/gomock"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Kafka.Topics.BookingEvents = "booking-events"
	cfg.Kafka.Topics.PaymentAlerts = "payment-alerts"

	return cfg
}

func TestPublishBooking(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)

	event := events.BookingEvent{Kind: events.BookingStatusChanged, BookingID: "bk-1", To: "accepted"}

	client.EXPECT().
		SendMessages(gomock.Any(), "booking-events", kafka.Message{Key: "bk-1", Value: event}).
		Return(nil)

	events.NewPublisher(testConfig(), client).PublishBooking(context.Background(), event)
}

func TestPublishDispute_SwallowsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)

	alert := events.DisputeAlert{Kind: events.PaymentDisputeOpened, DisputeID: "dp_1", PaymentIntentID: "pi_1"}

	client.EXPECT().
		SendMessages(gomock.Any(), "payment-alerts", kafka.Message{Key: "pi_1", Value: alert}).
		Return(errors.New("broker down"))

	events.NewPublisher(testConfig(), client).PublishDispute(context.Background(), alert)
}
