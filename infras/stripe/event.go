package stripe

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	stripeGo "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
)

const (
	EventPaymentSucceeded = "payment_intent.succeeded"
	EventPaymentFailed    = "payment_intent.payment_failed"
	EventPaymentCanceled  = "payment_intent.canceled"
	EventChargeRefunded   = "charge.refunded"
	EventDisputeCreated   = "charge.dispute.created"
	EventAccountUpdated   = "account.updated"
)

// Event is a processor callback with its data object left undecoded until the
// reconciler knows which kind it is.
type Event struct {
	ID      string
	Type    string
	Account string
	Created time.Time
	Data    json.RawMessage
}

// Charge carries the intent's metadata, which the processor copies onto the charge.
type Charge struct {
	ID              string
	PaymentIntentID string
	Amount          int64
	AmountRefunded  int64
	Currency        string
	Refunded        bool
	Destination     string
	ApplicationFee  int64
	Metadata        map[string]string
}

type Dispute struct {
	ID              string
	ChargeID        string
	PaymentIntentID string
	Amount          int64
	Currency        string
	Reason          string
}

func (e Event) PaymentIntent() (Intent, error) {
	var pi stripeGo.PaymentIntent
	if err := json.Unmarshal(e.Data, &pi); err != nil {
		return Intent{}, fmt.Errorf("decode payment intent of %s: %w", e.ID, err)
	}

	return intentFromStripe(&pi), nil
}

func (e Event) Charge() (Charge, error) {
	var ch stripeGo.Charge
	if err := json.Unmarshal(e.Data, &ch); err != nil {
		return Charge{}, fmt.Errorf("decode charge of %s: %w", e.ID, err)
	}

	charge := Charge{
		ID:             ch.ID,
		Amount:         ch.Amount,
		AmountRefunded: ch.AmountRefunded,
		Currency:       string(ch.Currency),
		Refunded:       ch.Refunded,
		ApplicationFee: ch.ApplicationFeeAmount,
		Metadata:       ch.Metadata,
	}

	if ch.PaymentIntent != nil {
		charge.PaymentIntentID = ch.PaymentIntent.ID
	}

	if ch.TransferData != nil && ch.TransferData.Destination != nil {
		charge.Destination = ch.TransferData.Destination.ID
	}

	return charge, nil
}

func (e Event) Dispute() (Dispute, error) {
	var dp stripeGo.Dispute
	if err := json.Unmarshal(e.Data, &dp); err != nil {
		return Dispute{}, fmt.Errorf("decode dispute of %s: %w", e.ID, err)
	}

	dispute := Dispute{
		ID:       dp.ID,
		Amount:   dp.Amount,
		Currency: string(dp.Currency),
		Reason:   string(dp.Reason),
	}

	if dp.Charge != nil {
		dispute.ChargeID = dp.Charge.ID
	}

	if dp.PaymentIntent != nil {
		dispute.PaymentIntentID = dp.PaymentIntent.ID
	}

	return dispute, nil
}

func (e Event) ConnectedAccount() (Account, error) {
	var acct stripeGo.Account
	if err := json.Unmarshal(e.Data, &acct); err != nil {
		return Account{}, fmt.Errorf("decode account of %s: %w", e.ID, err)
	}

	return accountFromStripe(&acct), nil
}

// eventDecoder only needs the endpoint secret, so it works in demo mode too.
type eventDecoder struct {
	secret string
}

func (d eventDecoder) WebhookSecretConfigured() bool {
	return d.secret != ""
}

func (d eventDecoder) VerifyEvent(payload []byte, signatureHeader string) (Event, error) {
	if signatureHeader == "" {
		return Event{}, fmt.Errorf("%w: missing signature header", ErrInvalidSignature)
	}

	ev, err := webhook.ConstructEventWithOptions(payload, signatureHeader, d.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		if errors.Is(err, webhook.ErrNotSigned) || errors.Is(err, webhook.ErrNoValidSignature) ||
			errors.Is(err, webhook.ErrInvalidHeader) || errors.Is(err, webhook.ErrTooOld) {
			return Event{}, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
		}

		return Event{}, fmt.Errorf("construct event: %w", err)
	}

	return fromStripeEvent(ev), nil
}

func (d eventDecoder) ParseEvent(payload []byte) (Event, error) {
	var ev stripeGo.Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}

	if ev.ID == "" || ev.Type == "" {
		return Event{}, errors.New("decode event: missing id or type")
	}

	return fromStripeEvent(ev), nil
}

func fromStripeEvent(ev stripeGo.Event) Event {
	event := Event{
		ID:      ev.ID,
		Type:    string(ev.Type),
		Account: ev.Account,
		Created: time.Unix(ev.Created, 0).UTC(),
	}

	if ev.Data != nil {
		event.Data = ev.Data.Raw
	}

	return event
}
