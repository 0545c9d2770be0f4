package model

import (
	"sparkle/shared/model"
	"time"
)

const (
	TableName  = "notifications"
	EntityName = "notification"

	FieldID          = "id"
	FieldRecipientID = "recipient_id"
	FieldBookingID   = "booking_id"
	FieldReadAt      = "read_at"
)

// Notification is addressed either to a user id or to a business id.
type Notification struct {
	ID          string     `db:"id"`
	RecipientID string     `db:"recipient_id"`
	BookingID   string     `db:"booking_id"`
	Kind        string     `db:"kind"`
	Title       string     `db:"title"`
	Body        string     `db:"body"`
	ReadAt      *time.Time `db:"read_at"`
	model.Metadata
}
