// Package stripe is the payment processor port. Callers see processor-neutral
// values; only this package knows the stripe-go types.
package stripe

//go:generate go run go.uber.org/mock/mockgen -source=./stripe.go -destination=./mocks/stripe_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"sparkle/config"
	"sparkle/infras/otel"
	"sparkle/shared/constant"
	"sparkle/shared/failure"
	"strings"

	"github.com/rs/zerolog/log"
	stripeGo "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

var (
	ErrNotConfigured    = errors.New("payment processor is not configured")
	ErrProcessor        = errors.New("payment processor rejected the request")
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

const accountLinkTypeOnboarding = "account_onboarding"

type IntentParams struct {
	Amount         int64
	Currency       string
	Destination    string
	ApplicationFee *int64
	Metadata       map[string]string
}

type Intent struct {
	ID             string
	ClientSecret   string
	Status         string
	Amount         int64
	Currency       string
	Destination    string
	ApplicationFee int64
	FailureReason  string
	Metadata       map[string]string
	Demo           bool
}

// Split reports whether the intent transfers funds to a connected account.
func (i Intent) Split() bool {
	return i.Destination != ""
}

type RefundParams struct {
	PaymentIntentID      string
	ReverseTransfer      bool
	RefundApplicationFee bool
}

type Refund struct {
	ID     string
	Status string
	Amount int64
}

type AccountParams struct {
	Email      string
	Country    string
	BusinessID string
}

type Account struct {
	ID               string
	ChargesEnabled   bool
	PayoutsEnabled   bool
	DetailsSubmitted bool
	CurrentlyDue     []string
	PastDue          []string
	DisabledReason   string
}

type Processor interface {
	Configured() bool
	CreatePaymentIntent(ctx context.Context, params IntentParams) (Intent, error)
	GetPaymentIntent(ctx context.Context, id string) (Intent, error)
	CreateRefund(ctx context.Context, params RefundParams) (Refund, error)
	GetAccount(ctx context.Context, accountID string) (Account, error)
	CreateAccount(ctx context.Context, params AccountParams) (Account, error)
	CreateAccountLink(ctx context.Context, accountID string) (string, error)
	VerifyEvent(payload []byte, signatureHeader string) (Event, error)
	ParseEvent(payload []byte) (Event, error)
	WebhookSecretConfigured() bool
}

// New picks the live client when a usable secret key is configured and the demo
// processor otherwise.
func New(cfg *config.Config, ot otel.Otel) Processor {
	conf := cfg.External.Stripe
	decoder := eventDecoder{secret: conf.WebhookSecret}

	if !usableKey(conf.SecretKey) {
		log.Warn().Msg("Stripe secret key missing, payment processor running in demo mode")

		return &demoImpl{eventDecoder: decoder}
	}

	return &stripeImpl{
		eventDecoder: decoder,
		api:          client.New(conf.SecretKey, nil),
		otel:         ot,
		country:      conf.Country,
		refreshURL:   conf.RefreshURL,
		returnURL:    conf.ReturnURL,
	}
}

func usableKey(key string) bool {
	if key == "" || strings.Contains(strings.ToLower(key), "placeholder") {
		return false
	}

	return strings.HasPrefix(key, "sk_") || strings.HasPrefix(key, "rk_")
}

type stripeImpl struct {
	eventDecoder

	api        *client.API
	otel       otel.Otel
	country    string
	refreshURL string
	returnURL  string
}

func (s *stripeImpl) Configured() bool {
	return true
}

func (s *stripeImpl) CreatePaymentIntent(ctx context.Context, params IntentParams) (intent Intent, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStripeScopeName, constant.OtelStripeScopeName+".CreatePaymentIntent")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		"amount":   params.Amount,
		"currency": params.Currency,
		"split":    params.Destination != "",
	})

	request := &stripeGo.PaymentIntentParams{
		Params:   stripeGo.Params{Context: ctx},
		Amount:   stripeGo.Int64(params.Amount),
		Currency: stripeGo.String(params.Currency),
		AutomaticPaymentMethods: &stripeGo.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripeGo.Bool(true),
		},
	}

	if params.Destination != "" {
		request.TransferData = &stripeGo.PaymentIntentTransferDataParams{
			Destination: stripeGo.String(params.Destination),
		}

		if params.ApplicationFee != nil {
			request.ApplicationFeeAmount = stripeGo.Int64(*params.ApplicationFee)
		}
	}

	for key, value := range params.Metadata {
		request.AddMetadata(key, value)
	}

	pi, err := s.api.PaymentIntents.New(request)
	if err != nil {
		log.Error().Err(err).Int64("amount", params.Amount).Msg("failed to create payment intent")

		return Intent{}, fmt.Errorf("%w: create payment intent: %w", ErrProcessor, err)
	}

	return intentFromStripe(pi), nil
}

func (s *stripeImpl) GetPaymentIntent(ctx context.Context, id string) (intent Intent, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStripeScopeName, constant.OtelStripeScopeName+".GetPaymentIntent")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute("payment_intent_id", id)

	pi, err := s.api.PaymentIntents.Get(id, &stripeGo.PaymentIntentParams{Params: stripeGo.Params{Context: ctx}})
	if err != nil {
		log.Error().Err(err).Str("payment_intent_id", id).Msg("failed to retrieve payment intent")

		return Intent{}, fmt.Errorf("%w: retrieve payment intent: %w", ErrProcessor, err)
	}

	return intentFromStripe(pi), nil
}

func (s *stripeImpl) CreateRefund(ctx context.Context, params RefundParams) (refund Refund, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStripeScopeName, constant.OtelStripeScopeName+".CreateRefund")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		"payment_intent_id": params.PaymentIntentID,
		"reverse_transfer":  params.ReverseTransfer,
	})

	request := &stripeGo.RefundParams{
		Params:        stripeGo.Params{Context: ctx},
		PaymentIntent: stripeGo.String(params.PaymentIntentID),
	}

	if params.ReverseTransfer {
		request.ReverseTransfer = stripeGo.Bool(true)
	}

	if params.RefundApplicationFee {
		request.RefundApplicationFee = stripeGo.Bool(true)
	}

	r, err := s.api.Refunds.New(request)
	if err != nil {
		log.Error().Err(err).Str("payment_intent_id", params.PaymentIntentID).Msg("failed to create refund")

		return Refund{}, fmt.Errorf("%w: create refund: %w", ErrProcessor, err)
	}

	return Refund{ID: r.ID, Status: string(r.Status), Amount: r.Amount}, nil
}

func (s *stripeImpl) GetAccount(ctx context.Context, accountID string) (account Account, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStripeScopeName, constant.OtelStripeScopeName+".GetAccount")
	defer scope.End()
	defer scope.TraceIfError(err)

	acct, err := s.api.Accounts.GetByID(accountID, &stripeGo.AccountParams{Params: stripeGo.Params{Context: ctx}})
	if err != nil {
		log.Error().Err(err).Str("account_id", accountID).Msg("failed to retrieve connected account")

		return Account{}, fmt.Errorf("%w: retrieve account: %w", ErrProcessor, err)
	}

	return accountFromStripe(acct), nil
}

func (s *stripeImpl) CreateAccount(ctx context.Context, params AccountParams) (account Account, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStripeScopeName, constant.OtelStripeScopeName+".CreateAccount")
	defer scope.End()
	defer scope.TraceIfError(err)

	country := params.Country
	if country == "" {
		country = s.country
	}

	request := &stripeGo.AccountParams{
		Params:  stripeGo.Params{Context: ctx},
		Type:    stripeGo.String(string(stripeGo.AccountTypeExpress)),
		Country: stripeGo.String(country),
		Capabilities: &stripeGo.AccountCapabilitiesParams{
			CardPayments: &stripeGo.AccountCapabilitiesCardPaymentsParams{Requested: stripeGo.Bool(true)},
			Transfers:    &stripeGo.AccountCapabilitiesTransfersParams{Requested: stripeGo.Bool(true)},
		},
	}

	if params.Email != "" {
		request.Email = stripeGo.String(params.Email)
	}

	request.AddMetadata("business_id", params.BusinessID)

	acct, err := s.api.Accounts.New(request)
	if err != nil {
		log.Error().Err(err).Str("business_id", params.BusinessID).Msg("failed to create connected account")

		return Account{}, fmt.Errorf("%w: create account: %w", ErrProcessor, err)
	}

	return accountFromStripe(acct), nil
}

func (s *stripeImpl) CreateAccountLink(ctx context.Context, accountID string) (url string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStripeScopeName, constant.OtelStripeScopeName+".CreateAccountLink")
	defer scope.End()
	defer scope.TraceIfError(err)

	link, err := s.api.AccountLinks.New(&stripeGo.AccountLinkParams{
		Params:     stripeGo.Params{Context: ctx},
		Account:    stripeGo.String(accountID),
		RefreshURL: stripeGo.String(s.refreshURL),
		ReturnURL:  stripeGo.String(s.returnURL),
		Type:       stripeGo.String(accountLinkTypeOnboarding),
	})
	if err != nil {
		log.Error().Err(err).Str("account_id", accountID).Msg("failed to create account link")

		return "", fmt.Errorf("%w: create account link: %w", ErrProcessor, err)
	}

	return link.URL, nil
}

func intentFromStripe(pi *stripeGo.PaymentIntent) Intent {
	intent := Intent{
		ID:             pi.ID,
		ClientSecret:   pi.ClientSecret,
		Status:         string(pi.Status),
		Amount:         pi.Amount,
		Currency:       string(pi.Currency),
		ApplicationFee: pi.ApplicationFeeAmount,
		Metadata:       pi.Metadata,
	}

	if pi.TransferData != nil && pi.TransferData.Destination != nil {
		intent.Destination = pi.TransferData.Destination.ID
	}

	switch {
	case pi.LastPaymentError != nil && pi.LastPaymentError.Msg != "":
		intent.FailureReason = pi.LastPaymentError.Msg
	case pi.CancellationReason != "":
		intent.FailureReason = "canceled: " + string(pi.CancellationReason)
	}

	return intent
}

func accountFromStripe(acct *stripeGo.Account) Account {
	account := Account{
		ID:               acct.ID,
		ChargesEnabled:   acct.ChargesEnabled,
		PayoutsEnabled:   acct.PayoutsEnabled,
		DetailsSubmitted: acct.DetailsSubmitted,
	}

	if acct.Requirements != nil {
		account.CurrentlyDue = acct.Requirements.CurrentlyDue
		account.PastDue = acct.Requirements.PastDue
		account.DisabledReason = string(acct.Requirements.DisabledReason)
	}

	return account
}

// AsFailure maps a processor error onto the response the caller should see. The
// processor's own message is never exposed.
func AsFailure(err error) error {
	if errors.Is(err, ErrNotConfigured) {
		return failure.NotConfigured
	}

	return failure.ProcessorError
}
