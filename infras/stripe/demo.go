package stripe

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

const demoIntentPrefix = "pi_demo_"

// demoImpl stands in for the processor when no credentials are present. Intents are
// placeholders a client can recognise by Demo; anything that would move money fails
// with ErrNotConfigured.
type demoImpl struct {
	eventDecoder
}

func (d *demoImpl) Configured() bool {
	return false
}

func (d *demoImpl) CreatePaymentIntent(_ context.Context, params IntentParams) (Intent, error) {
	id := demoIntentPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")

	return Intent{
		ID:           id,
		ClientSecret: id + "_secret_demo",
		Status:       "requires_payment_method",
		Amount:       params.Amount,
		Currency:     params.Currency,
		Metadata:     params.Metadata,
		Demo:         true,
	}, nil
}

func (d *demoImpl) GetPaymentIntent(_ context.Context, _ string) (Intent, error) {
	return Intent{}, ErrNotConfigured
}

func (d *demoImpl) CreateRefund(_ context.Context, _ RefundParams) (Refund, error) {
	return Refund{}, ErrNotConfigured
}

func (d *demoImpl) GetAccount(_ context.Context, _ string) (Account, error) {
	return Account{}, ErrNotConfigured
}

func (d *demoImpl) CreateAccount(_ context.Context, _ AccountParams) (Account, error) {
	return Account{}, ErrNotConfigured
}

func (d *demoImpl) CreateAccountLink(_ context.Context, _ string) (string, error) {
	return "", ErrNotConfigured
}

// IsDemoIntent reports whether id was minted by the demo processor.
func IsDemoIntent(id string) bool {
	return strings.HasPrefix(id, demoIntentPrefix)
}
