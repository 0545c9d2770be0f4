package kafka_test

import (
	"context"
	"sparkle/config"
	"sparkle/infras/kafka"
	"testing"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
}

func TestMessageRoundTrip(t *testing.T) {
	msg := kafka.Message{Key: "bk-1", Value: payload{BookingID: "bk-1", Status: "accepted"}}

	raw, err := msg.ToKafkaMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte("bk-1"), raw.Key)
	assert.JSONEq(t, `{"booking_id":"bk-1","status":"accepted"}`, string(raw.Value))

	decoded, err := kafka.Decode[payload](raw)
	require.NoError(t, err)
	assert.Equal(t, "accepted", decoded.Status)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := kafka.Decode[payload](kafkaGo.Message{Value: []byte("{")})
	assert.Error(t, err)
}

func TestDisabledClient(t *testing.T) {
	client := kafka.New(&config.Config{})

	err := client.SendMessages(context.Background(), "booking-events", kafka.Message{Key: "k", Value: payload{}})
	assert.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	assert.NoError(t, client.Consume(ctx, "", "booking-events", nil))
	assert.NoError(t, client.Close())
}
