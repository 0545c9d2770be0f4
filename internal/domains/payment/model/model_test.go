package model_test

import (
	"sparkle/internal/domains/payment/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriorStatuses(t *testing.T) {
	assert.Equal(t, []model.Status{model.StatusPending}, model.PriorStatuses(model.StatusSucceeded))
	assert.Equal(t, []model.Status{model.StatusPending}, model.PriorStatuses(model.StatusFailed))
	assert.Equal(t, []model.Status{model.StatusPending, model.StatusSucceeded, model.StatusFailed}, model.PriorStatuses(model.StatusRefunded))
	assert.Empty(t, model.PriorStatuses(model.StatusPending))
}

func TestPriorStatuses_ReturnsCopy(t *testing.T) {
	prior := model.PriorStatuses(model.StatusRefunded)
	prior[0] = model.StatusRefunded

	assert.Equal(t, model.StatusPending, model.PriorStatuses(model.StatusRefunded)[0])
}

func TestParseStatus(t *testing.T) {
	for _, value := range []string{"pending", "succeeded", "failed", "refunded"} {
		status, err := model.ParseStatus(value)
		assert.NoError(t, err)
		assert.Equal(t, model.Status(value), status)
	}

	_, err := model.ParseStatus("paid")
	assert.Error(t, err)
}

func TestStatusScan(t *testing.T) {
	tests := []struct {
		name     string
		src      any
		expected model.Status
		wantErr  bool
	}{
		{name: "string", src: "succeeded", expected: model.StatusSucceeded},
		{name: "bytes", src: []byte("refunded"), expected: model.StatusRefunded},
		{name: "unknown value", src: "chargeback", wantErr: true},
		{name: "null", src: nil, wantErr: true},
		{name: "wrong type", src: int64(1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var status model.Status

			err := status.Scan(tt.src)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, status)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, status)
		})
	}
}

func TestStatusValue(t *testing.T) {
	value, err := model.StatusRefunded.Value()

	assert.NoError(t, err)
	assert.Equal(t, "refunded", value)
}

func TestPayment_Split(t *testing.T) {
	assert.True(t, model.Payment{DestinationAccountID: "acct_1"}.Split())
	assert.False(t, model.Payment{}.Split())
}
