package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Payment=MockPaymentService

import (
	"context"
	"errors"
	"fmt"
	"sparkle/config"
	"sparkle/infras/otel"
	"sparkle/infras/stripe"
	"sparkle/internal/domains/payment/model/dto"
	"sparkle/internal/domains/payment/repository"
	payoutModel "sparkle/internal/domains/payout/model"
	payoutRepo "sparkle/internal/domains/payout/repository"
	"sparkle/shared"
	"sparkle/shared/constant"
	"sparkle/shared/failure"
	"sparkle/shared/metrics"
	"sparkle/shared/money"
	"sparkle/shared/timezone"
	"strconv"

	"github.com/rs/zerolog/log"
)

const (
	routingSplit    = "split"
	routingPlatform = "platform"
	routingDemo     = "demo"
)

// Metadata keys stamped on every intent so webhook events can be traced back.
const (
	MetadataBookingID  = "booking_id"
	MetadataBusinessID = "business_id"
	MetadataCustomerID = "customer_id"
)

// Refunder returns money for a captured payment.
type Refunder interface {
	Refund(ctx context.Context, req dto.RefundRequest) (dto.RefundResult, error)
}

type Payment interface {
	Refunder
	CreateIntent(ctx context.Context, req dto.CreateIntentRequest) (dto.IntentResponse, error)
}

type serviceImpl struct {
	repo       repository.Payment
	payoutRepo payoutRepo.PayoutAccount
	processor  stripe.Processor
	cfg        *config.Config
	otel       otel.Otel
}

func New(repo repository.Payment, payoutRepo payoutRepo.PayoutAccount, processor stripe.Processor, cfg *config.Config, otel otel.Otel) Payment {
	return &serviceImpl{
		repo:       repo,
		payoutRepo: payoutRepo,
		processor:  processor,
		cfg:        cfg,
		otel:       otel,
	}
}

func (s *serviceImpl) CreateIntent(ctx context.Context, req dto.CreateIntentRequest) (res dto.IntentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.CreateIntent")
	defer scope.End()
	defer scope.TraceIfError(err)

	caller := shared.CallerFromContext(ctx)
	if !caller.Authenticated() {
		return res, failure.Unauthenticated // nolint:wrapcheck
	}

	currency := req.NormalizedCurrency()

	minor := money.ToMinor(req.Amount, currency)
	if !req.Amount.IsPositive() || minor <= 0 {
		return res, failure.InvalidAmount // nolint:wrapcheck
	}

	params := stripe.IntentParams{
		Amount:   minor,
		Currency: currency,
		Metadata: map[string]string{
			MetadataBusinessID: req.BusinessID,
			MetadataCustomerID: caller.UserID,
		},
	}

	if req.BookingID != "" {
		params.Metadata[MetadataBookingID] = req.BookingID
	}

	if !s.processor.Configured() {
		intent, err := s.processor.CreatePaymentIntent(ctx, params)
		if err != nil {
			return res, stripe.AsFailure(err) // nolint:wrapcheck
		}

		metrics.PaymentIntentsTotal.WithLabelValues(routingDemo).Inc()
		log.Warn().Str("payment_intent_id", intent.ID).Msg("payment processor not configured, returning demo intent")

		res.FromIntent(intent, 0)

		return res, nil
	}

	account, err := s.payoutRepo.Get(ctx, shared.FilterByID(req.BusinessID, payoutModel.FieldBusinessID, payoutModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("business_id", req.BusinessID).Msg("failed to get payout account")

		return res, fmt.Errorf("failed to get payout account: %w", err)
	}

	var fee int64

	routing := routingPlatform

	if account.CanReceiveSplit() {
		fee = money.PlatformFee(minor)
		if req.PlatformFeeOverride != nil {
			fee = *req.PlatformFeeOverride
		}

		if fee > minor {
			return res, failure.BadRequestFromString("platform fee cannot exceed the payment amount") // nolint:wrapcheck
		}

		params.Destination = account.AccountID
		params.ApplicationFee = &fee
		routing = routingSplit
	}

	intent, err := s.processor.CreatePaymentIntent(ctx, params)
	if err != nil {
		log.Error().Err(err).Str("business_id", req.BusinessID).Int64("amount", minor).Msg("failed to create payment intent")

		return res, stripe.AsFailure(err) // nolint:wrapcheck
	}

	metrics.PaymentIntentsTotal.WithLabelValues(routing).Inc()

	if err := s.repo.Insert(ctx, req.ToModel(intent, caller.UserID, timezone.Now())); err != nil {
		log.Error().Err(err).Str("payment_intent_id", intent.ID).Msg("failed to record pending payment, webhook will reconcile")
	}

	res.FromIntent(intent, fee)

	return res, nil
}

func (s *serviceImpl) Refund(ctx context.Context, req dto.RefundRequest) (res dto.RefundResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.Refund")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !s.processor.Configured() {
		log.Warn().Str("payment_intent_id", req.PaymentIntentID).Msg("payment processor not configured, refund skipped")
		metrics.RefundsTotal.WithLabelValues(dto.RefundStatusSkipped, "false").Inc()

		return dto.RefundResult{Status: dto.RefundStatusSkipped, Skipped: true}, nil
	}

	split, err := s.splitRouted(ctx, req)
	if err != nil {
		return res, err
	}

	refund, err := s.processor.CreateRefund(ctx, stripe.RefundParams{
		PaymentIntentID:      req.PaymentIntentID,
		ReverseTransfer:      split,
		RefundApplicationFee: split,
	})
	if err != nil {
		log.Error().Err(err).Str("payment_intent_id", req.PaymentIntentID).Bool("split", split).Msg("failed to create refund")
		metrics.RefundsTotal.WithLabelValues(metrics.ResultFailed, strconv.FormatBool(split)).Inc()

		return res, stripe.AsFailure(err) // nolint:wrapcheck
	}

	metrics.RefundsTotal.WithLabelValues(refund.Status, strconv.FormatBool(split)).Inc()
	log.Info().
		Str("payment_intent_id", req.PaymentIntentID).
		Str("refund_id", refund.ID).
		Str("status", refund.Status).
		Bool("split", split).
		Msg("refund requested")

	return dto.RefundResult{
		RefundID:      refund.ID,
		Status:        refund.Status,
		SplitReversal: split,
	}, nil
}

// splitRouted asks the processor how the original charge was routed. The caller's
// payout account id is only trusted when the processor cannot answer.
func (s *serviceImpl) splitRouted(ctx context.Context, req dto.RefundRequest) (bool, error) {
	intent, err := s.processor.GetPaymentIntent(ctx, req.PaymentIntentID)
	if err == nil {
		return intent.Split(), nil
	}

	if req.PayoutAccountID != "" && !errors.Is(err, stripe.ErrNotConfigured) {
		log.Warn().Err(err).Str("payment_intent_id", req.PaymentIntentID).Msg("could not retrieve intent, assuming split routing")

		return true, nil
	}

	log.Error().Err(err).Str("payment_intent_id", req.PaymentIntentID).Msg("failed to retrieve payment intent for refund")

	return false, stripe.AsFailure(err) // nolint:wrapcheck
}
