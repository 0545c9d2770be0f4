package model

import (
	"database/sql/driver"
	"fmt"
	"slices"
	"sparkle/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "payments"
	EntityName = "payment"

	FieldID              = "id"
	FieldBookingID       = "booking_id"
	FieldPaymentIntentID = "payment_intent_id"
	FieldStatus          = "status"
	FieldFailureReason   = "failure_reason"
	FieldRefundedAmount  = "refunded_amount"
	FieldPaidAt          = "paid_at"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
)

var statuses = []Status{StatusPending, StatusSucceeded, StatusFailed, StatusRefunded}

// priorStatuses lists, per target, the statuses a payment may move from. A repeated
// event finds the record already past its prior status and changes nothing. A refund
// can be reported before the success event, so refunded is reachable from pending.
var priorStatuses = map[Status][]Status{
	StatusSucceeded: {StatusPending},
	StatusFailed:    {StatusPending},
	StatusRefunded:  {StatusPending, StatusSucceeded, StatusFailed},
}

func ParseStatus(value string) (Status, error) {
	status := Status(value)
	if !slices.Contains(statuses, status) {
		return "", fmt.Errorf("unknown payment status %q", value)
	}

	return status, nil
}

// Scan rejects values outside the enumeration at the store boundary.
func (s *Status) Scan(src any) error {
	var raw string

	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into payment status", src)
	}

	status, err := ParseStatus(raw)
	if err != nil {
		return err
	}

	*s = status

	return nil
}

func (s Status) Value() (driver.Value, error) {
	return string(s), nil
}

func PriorStatuses(target Status) []Status {
	return slices.Clone(priorStatuses[target])
}

type Payment struct {
	ID                   string          `db:"id"`
	BookingID            *string         `db:"booking_id"`
	BusinessID           string          `db:"business_id"`
	PaymentIntentID      string          `db:"payment_intent_id"`
	Amount               decimal.Decimal `db:"amount"`
	Currency             string          `db:"currency"`
	Status               Status          `db:"status"`
	DestinationAccountID string          `db:"destination_account_id"`
	ApplicationFee       int64           `db:"application_fee"`
	FailureReason        string          `db:"failure_reason"`
	RefundedAmount       decimal.Decimal `db:"refunded_amount"`
	PaidAt               *time.Time      `db:"paid_at"`
	model.Metadata
}

func (p Payment) Split() bool {
	return p.DestinationAccountID != ""
}
