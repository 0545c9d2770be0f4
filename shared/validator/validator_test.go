package validator_test

import (
	"sparkle/shared/failure"
	"sparkle/shared/validator"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type bookingBody struct {
	ServiceID     string `json:"service_id"     validate:"required"`
	Email         string `json:"email"          validate:"omitempty,email"`
	RequestedDate string `json:"requested_date" validate:"required,bookingdate"`
	RequestedTime string `json:"requested_time" validate:"required,bookingtime"`
	Guests        int    `json:"guests"         validate:"gte=0,lte=20"`
	Currency      string `json:"currency"       validate:"omitempty,currency"`
	CancelledBy   string `json:"cancelled_by"   validate:"omitempty,oneof=customer business admin"`
}

func validBody() bookingBody {
	return bookingBody{
		ServiceID:     "svc-1",
		RequestedDate: "2026-11-02",
		RequestedTime: "09:30",
		Currency:      "gbp",
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(b *bookingBody)
		expectError string
	}{
		{name: "valid body", mutate: func(_ *bookingBody) {}},
		{name: "missing service", mutate: func(b *bookingBody) { b.ServiceID = "" }, expectError: "service_id is required"},
		{name: "free-form date", mutate: func(b *bookingBody) { b.RequestedDate = "next tuesday" }, expectError: "requested_date must be a date formatted as YYYY-MM-DD"},
		{name: "impossible date", mutate: func(b *bookingBody) { b.RequestedDate = "2026-02-30" }, expectError: "requested_date must be a date"},
		{name: "free-form time", mutate: func(b *bookingBody) { b.RequestedTime = "morning" }, expectError: "requested_time must be a time formatted as HH:MM"},
		{name: "out of range time", mutate: func(b *bookingBody) { b.RequestedTime = "25:00" }, expectError: "requested_time must be a time"},
		{name: "uppercase currency", mutate: func(b *bookingBody) { b.Currency = "EUR" }},
		{name: "unknown currency", mutate: func(b *bookingBody) { b.Currency = "zzz" }, expectError: "currency must be an ISO 4217 currency code"},
		{name: "bad email", mutate: func(b *bookingBody) { b.Email = "nope" }, expectError: "email must be a valid email address"},
		{name: "guests out of range", mutate: func(b *bookingBody) { b.Guests = 50 }, expectError: "guests must be less than or equal to 20"},
		{name: "bad actor", mutate: func(b *bookingBody) { b.CancelledBy = "robot" }, expectError: "cancelled_by must be one of customer business admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validBody()
			tt.mutate(&body)

			err := validator.ValidateStruct(&body)

			if tt.expectError == "" {
				assert.NoError(t, err)

				return
			}

			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
			assert.Equal(t, 400, failure.GetCode(err))
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       any
		tag         string
		expectError bool
	}{
		{name: "valid required string", field: "test", tag: "required"},
		{name: "empty required string", field: "", tag: "required", expectError: true},
		{name: "valid booking date", field: "2026-01-31", tag: "bookingdate"},
		{name: "invalid booking date", field: "31/01/2026", tag: "bookingdate", expectError: true},
		{name: "number in range", field: 25, tag: "gte=0,lte=100"},
		{name: "number out of range", field: 150, tag: "gte=0,lte=100", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:     "valid JSON",
			jsonBody: `{"service_id":"svc-1","requested_date":"2026-11-02","requested_time":"14:00"}`,
		},
		{
			name:        "invalid field",
			jsonBody:    `{"service_id":"svc-1","requested_date":"2026-11-02","requested_time":"2pm"}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"service_id":}`,
			expectError: true,
		},
		{
			name:        "empty JSON",
			jsonBody:    `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data bookingBody

			err := validator.Validate(strings.NewReader(tt.jsonBody), &data)

			if tt.expectError {
				assert.Error(t, err)
				assert.Equal(t, 400, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
