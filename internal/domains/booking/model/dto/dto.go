package dto

import (
	"sparkle/internal/domains/booking/model"
	"sparkle/shared"
	"sparkle/shared/constant"
	gDto "sparkle/shared/dto"
	"sparkle/shared/money"
	gModel "sparkle/shared/model"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateBookingRequest struct {
	BusinessID    string          `json:"business_id"    validate:"required,max=64"`
	ServiceID     string          `json:"service_id"     validate:"required,max=64"`
	RequestedDate string          `json:"requested_date" validate:"required,bookingdate"`
	RequestedTime string          `json:"requested_time" validate:"required,bookingtime"`
	TotalCost     decimal.Decimal `json:"total_cost"     swaggertype:"string" example:"75.00"`
}

// ToModel builds a pending booking owned by customerID. Dates arrive validated.
func (c *CreateBookingRequest) ToModel(customerID string, now time.Time) (model.BookingRequest, error) {
	requestedDate, err := time.ParseInLocation(constant.BookingDateFormat, c.RequestedDate, now.Location())
	if err != nil {
		return model.BookingRequest{}, err //nolint:wrapcheck
	}

	total := c.TotalCost.Round(2)

	return model.BookingRequest{
		ID:            uuid.NewString(),
		CustomerID:    customerID,
		BusinessID:    c.BusinessID,
		ServiceID:     c.ServiceID,
		RequestedDate: requestedDate,
		RequestedTime: c.RequestedTime,
		TotalCost:     total,
		PlatformFee:   money.BookingFee(total),
		Status:        model.StatusPending,
		Metadata:      gModel.NewMetadata(now, customerID),
	}, nil
}

type TransitionRequest struct {
	Status  string `json:"status"  validate:"required,oneof=accepted declined cancelled completed"`
	Reason  string `json:"reason"  validate:"omitempty,max=500"`
	Message string `json:"message" validate:"omitempty,max=1000"`
}

type BookingResponse struct {
	ID                 string `json:"id"`
	CustomerID         string `json:"customer_id"`
	BusinessID         string `json:"business_id"`
	ServiceID          string `json:"service_id"`
	RequestedDate      string `json:"requested_date"`
	RequestedTime      string `json:"requested_time"`
	TotalCost          string `json:"total_cost"`
	PlatformFee        string `json:"platform_fee"`
	Status             string `json:"status"`
	CancellationReason string `json:"cancellation_reason,omitempty"`
	CancelledBy        string `json:"cancelled_by,omitempty"`
	RefundStatus       string `json:"refund_status,omitempty"`
	RefundID           string `json:"refund_id,omitempty"`
	ResponseMessage    string `json:"response_message,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.BookingRequest) {
	r.ID = model.ID
	r.CustomerID = model.CustomerID
	r.BusinessID = model.BusinessID
	r.ServiceID = model.ServiceID
	r.RequestedDate = model.RequestedDate.Format(constant.BookingDateFormat)
	r.RequestedTime = model.RequestedTime
	r.TotalCost = model.TotalCost.StringFixed(2)
	r.PlatformFee = model.PlatformFee.StringFixed(2)
	r.Status = model.Status.String()
	r.CancellationReason = model.CancellationReason
	r.CancelledBy = model.CancelledBy
	r.RefundStatus = model.RefundStatus
	r.RefundID = model.RefundID
	r.ResponseMessage = model.ResponseMessage
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.BookingRequest, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// RefundOutcome is attached to a cancellation that had to return money.
type RefundOutcome struct {
	RefundID      string `json:"refund_id,omitempty"`
	Status        string `json:"status"`
	SplitReversal bool   `json:"split_reversal"`
	Skipped       bool   `json:"skipped"`
	Error         string `json:"error,omitempty"`
}

type TransitionResponse struct {
	Booking BookingResponse `json:"booking"`
	Refund  *RefundOutcome  `json:"refund,omitempty"`
}
