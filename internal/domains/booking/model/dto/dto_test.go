package dto_test

import (
	"sparkle/internal/domains/booking/model"
	"sparkle/internal/domains/booking/model/dto"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingRequest_ToModel(t *testing.T) {
	now := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	req := dto.CreateBookingRequest{
		BusinessID:    "biz-1",
		ServiceID:     "svc-deep-clean",
		RequestedDate: "2026-10-12",
		RequestedTime: "09:30",
		TotalCost:     decimal.RequireFromString("75"),
	}

	booking, err := req.ToModel("cus-1", now)
	require.NoError(t, err)

	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, "cus-1", booking.CustomerID)
	assert.Equal(t, model.StatusPending, booking.Status)
	assert.Equal(t, time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC), booking.RequestedDate)
	assert.Equal(t, "75.00", booking.TotalCost.StringFixed(2))
	assert.Equal(t, "11.25", booking.PlatformFee.StringFixed(2))
	assert.Equal(t, "cus-1", booking.CreatedBy)
	assert.Equal(t, now, booking.CreatedAt)
}

func TestCreateBookingRequest_ToModel_BadDate(t *testing.T) {
	req := dto.CreateBookingRequest{RequestedDate: "tomorrow"}

	_, err := req.ToModel("cus-1", time.Now())
	assert.Error(t, err)
}

func TestBookingResponse_FromModel(t *testing.T) {
	var res dto.BookingResponse

	res.FromModel(model.BookingRequest{
		ID:            "bk-1",
		RequestedDate: time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC),
		RequestedTime: "09:30",
		TotalCost:     decimal.RequireFromString("75"),
		PlatformFee:   decimal.RequireFromString("11.25"),
		Status:        model.StatusCancelled,
		CancelledBy:   model.RoleCustomer,
		RefundStatus:  model.RefundProcessed,
		RefundID:      "re_1",
	})

	assert.Equal(t, "2026-10-12", res.RequestedDate)
	assert.Equal(t, "75.00", res.TotalCost)
	assert.Equal(t, "cancelled", res.Status)
	assert.Equal(t, "re_1", res.RefundID)
}

func TestGetBookingsResponse_FromModels(t *testing.T) {
	var res dto.GetBookingsResponse

	res.FromModels([]model.BookingRequest{{ID: "a"}, {ID: "b"}}, 21, 10)

	assert.Len(t, res.Bookings, 2)
	assert.Equal(t, 3, res.TotalPage)
	assert.Equal(t, 21, res.TotalData)
}
