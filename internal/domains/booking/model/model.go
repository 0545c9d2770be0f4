package model

import (
	"sparkle/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "booking_requests"
	EntityName = "booking"

	FieldID                 = "id"
	FieldCustomerID         = "customer_id"
	FieldBusinessID         = "business_id"
	FieldServiceID          = "service_id"
	FieldRequestedDate      = "requested_date"
	FieldStatus             = "status"
	FieldCancellationReason = "cancellation_reason"
	FieldCancelledBy        = "cancelled_by"
	FieldRefundStatus       = "refund_status"
	FieldRefundID           = "refund_id"
	FieldResponseMessage    = "response_message"
)

const (
	RefundPending   = "pending"
	RefundProcessed = "processed"
	RefundFailed    = "failed"
)

type BookingRequest struct {
	ID                 string          `db:"id"`
	CustomerID         string          `db:"customer_id"`
	BusinessID         string          `db:"business_id"`
	ServiceID          string          `db:"service_id"`
	RequestedDate      time.Time       `db:"requested_date"`
	RequestedTime      string          `db:"requested_time"`
	TotalCost          decimal.Decimal `db:"total_cost"`
	PlatformFee        decimal.Decimal `db:"platform_fee"`
	Status             Status          `db:"status"`
	CancellationReason string          `db:"cancellation_reason"`
	CancelledBy        string          `db:"cancelled_by"`
	RefundStatus       string          `db:"refund_status"`
	RefundID           string          `db:"refund_id"`
	ResponseMessage    string          `db:"response_message"`
	model.Metadata
}

// PartyRole reports the role the caller plays in the booking, if any. A business owner
// who also booked their own service acts as the business.
func (b BookingRequest) PartyRole(userID, businessID string) (string, bool) {
	switch {
	case businessID != "" && businessID == b.BusinessID:
		return RoleBusiness, true
	case userID != "" && userID == b.CustomerID:
		return RoleCustomer, true
	default:
		return "", false
	}
}
