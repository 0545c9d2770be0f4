package service

//go:generate go run go.uber.org/mock/mockgen -source=./webhook.go -destination=../mocks/webhook_mock.go -package=mocks

import (
	"context"
	"fmt"
	"maps"
	"sparkle/config"
	"sparkle/infras/otel"
	"sparkle/infras/s3"
	"sparkle/infras/stripe"
	bookingModel "sparkle/internal/domains/booking/model"
	bookingRepo "sparkle/internal/domains/booking/repository"
	"sparkle/internal/domains/payment/model"
	"sparkle/internal/domains/payment/repository"
	payoutService "sparkle/internal/domains/payout/service"
	"sparkle/internal/events"
	"sparkle/shared"
	"sparkle/shared/cache"
	"sparkle/shared/constant"
	gDto "sparkle/shared/dto"
	"sparkle/shared/failure"
	"sparkle/shared/metrics"
	"sparkle/shared/money"
	gModel "sparkle/shared/model"
	"sparkle/shared/timezone"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	cacheWebhookEvent = "webhook:event"
	webhookActor      = "stripe-webhook"
	archivePrefix     = "webhooks"

	defaultFailureReason = "payment was not completed"
)

// Webhook reconciles processor events into payment and booking records.
type Webhook interface {
	// Handle returns an error only when the event must be rejected. Events that were
	// accepted but could not be applied are logged and acknowledged.
	Handle(ctx context.Context, payload []byte, signature string) error
}

type webhookImpl struct {
	repo        repository.Payment
	bookingRepo bookingRepo.Booking
	payout      payoutService.Payout
	processor   stripe.Processor
	cache       cache.RedisCache
	publisher   events.Publisher
	archive     s3.S3
	cfg         *config.Config
	otel        otel.Otel
}

func NewWebhook(
	repo repository.Payment,
	bookingRepo bookingRepo.Booking,
	payout payoutService.Payout,
	processor stripe.Processor,
	cache cache.RedisCache,
	publisher events.Publisher,
	archive s3.S3,
	cfg *config.Config,
	otel otel.Otel,
) Webhook {
	return &webhookImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		payout:      payout,
		processor:   processor,
		cache:       cache,
		publisher:   publisher,
		archive:     archive,
		cfg:         cfg,
		otel:        otel,
	}
}

func (w *webhookImpl) Handle(ctx context.Context, payload []byte, signature string) (err error) {
	ctx, scope := w.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".webhook.Handle")
	defer scope.End()
	defer scope.TraceIfError(err)

	event, err := w.decode(payload, signature)
	if err != nil {
		return err
	}

	scope.SetAttributes(map[string]any{"event_id": event.ID, "event_type": event.Type})

	claimed, err := w.cache.Claim(ctx, shared.BuildCacheKey(cacheWebhookEvent, event.ID), w.cfg.Webhook.IdempotencyTTLSeconds)
	if err != nil {
		// Every mutation is conditional on the prior status, so applying without the claim is still safe.
		log.Warn().Err(err).Str("event_id", event.ID).Msg("failed to claim webhook event, applying without dedup")
	} else if !claimed {
		log.Info().Str("event_id", event.ID).Str("type", event.Type).Msg("webhook event already processed")
		metrics.WebhookEventsTotal.WithLabelValues(event.Type, metrics.ResultDup).Inc()

		return nil
	}

	w.store(ctx, event, payload)

	result, err := backoff.Retry(ctx, func() (string, error) {
		return w.apply(ctx, event)
	}, backoff.WithBackOff(w.backOff()), backoff.WithMaxTries(w.maxTries()))
	if err != nil {
		log.Error().Err(err).Str("event_id", event.ID).Str("type", event.Type).Msg("failed to apply webhook event, needs manual follow-up")
		metrics.WebhookEventsTotal.WithLabelValues(event.Type, metrics.ResultFailed).Inc()

		return nil
	}

	metrics.WebhookEventsTotal.WithLabelValues(event.Type, result).Inc()

	return nil
}

func (w *webhookImpl) decode(payload []byte, signature string) (stripe.Event, error) {
	if !w.processor.WebhookSecretConfigured() {
		log.Warn().Msg("webhook secret not configured, processing event without signature verification")

		event, err := w.processor.ParseEvent(payload)
		if err != nil {
			return event, failure.BadRequestFromString("malformed webhook event") // nolint:wrapcheck
		}

		return event, nil
	}

	if signature == constant.Empty {
		return stripe.Event{}, failure.InvalidSignature // nolint:wrapcheck
	}

	event, err := w.processor.VerifyEvent(payload, signature)
	if err != nil {
		log.Warn().Err(err).Msg("webhook signature verification failed")

		return event, failure.InvalidSignature // nolint:wrapcheck
	}

	return event, nil
}

// store archives the raw payload. The archive is best effort and never delays the acknowledgement.
func (w *webhookImpl) store(ctx context.Context, event stripe.Event, payload []byte) {
	if !w.archive.Enabled() {
		return
	}

	key := s3.DatedKey(archivePrefix, timezone.Now(), event.ID+".json")

	go func() {
		c := context.WithoutCancel(ctx)

		if err := w.archive.Put(c, key, constant.ContentTypeJSON, payload); err != nil {
			log.Error().Err(err).Str("event_id", event.ID).Msg("failed to archive webhook event")
		}
	}()
}

func (w *webhookImpl) backOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if w.cfg.Webhook.RetryInitialIntervalMs > 0 {
		b.InitialInterval = time.Duration(w.cfg.Webhook.RetryInitialIntervalMs) * time.Millisecond
	}

	return b
}

func (w *webhookImpl) maxTries() uint {
	if w.cfg.Webhook.RetryMaxTries == 0 {
		return 1
	}

	return w.cfg.Webhook.RetryMaxTries
}

// apply runs one attempt. Decoding errors are permanent; store errors are retried.
func (w *webhookImpl) apply(ctx context.Context, event stripe.Event) (string, error) {
	switch event.Type {
	case stripe.EventPaymentSucceeded:
		intent, err := event.PaymentIntent()
		if err != nil {
			return "", backoff.Permanent(err)
		}

		return w.settle(ctx, intent, model.StatusSucceeded, map[string]any{
			model.FieldPaidAt: timezone.Now(),
		})
	case stripe.EventPaymentFailed, stripe.EventPaymentCanceled:
		intent, err := event.PaymentIntent()
		if err != nil {
			return "", backoff.Permanent(err)
		}

		reason := intent.FailureReason
		if reason == constant.Empty {
			reason = defaultFailureReason
		}

		return w.settle(ctx, intent, model.StatusFailed, map[string]any{
			model.FieldFailureReason: reason,
		})
	case stripe.EventChargeRefunded:
		charge, err := event.Charge()
		if err != nil {
			return "", backoff.Permanent(err)
		}

		return w.refunded(ctx, charge)
	case stripe.EventDisputeCreated:
		dispute, err := event.Dispute()
		if err != nil {
			return "", backoff.Permanent(err)
		}

		w.alert(ctx, event, dispute)

		return metrics.ResultOK, nil
	case stripe.EventAccountUpdated:
		account, err := event.ConnectedAccount()
		if err != nil {
			return "", backoff.Permanent(err)
		}

		if err := w.payout.SyncFromProcessor(ctx, account, event.Created); err != nil {
			return "", fmt.Errorf("failed to sync payout account: %w", err)
		}

		return metrics.ResultOK, nil
	default:
		log.Info().Str("event_id", event.ID).Str("type", event.Type).Msg("ignoring webhook event")

		return metrics.ResultIgnored, nil
	}
}

func byIntent(intentID string) gDto.FilterGroup {
	return gDto.And(gDto.Eq(model.TableName, model.FieldPaymentIntentID, intentID))
}

func fromPrior(filter gDto.FilterGroup, target model.Status) gDto.FilterGroup {
	return filter.Append(gDto.Filter{
		ArgName:  "prior_status",
		Field:    model.FieldStatus,
		Value:    model.PriorStatuses(target),
		Operator: gDto.FilterOperatorIn,
		Table:    model.TableName,
	})
}

func changes(target model.Status, fields map[string]any) map[string]any {
	updated := map[string]any{
		model.FieldStatus:        target,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: webhookActor,
	}

	maps.Copy(updated, fields)

	return updated
}

// settle moves a payment to a terminal authorization status.
func (w *webhookImpl) settle(ctx context.Context, intent stripe.Intent, target model.Status, fields map[string]any) (string, error) {
	rows, err := w.upsert(ctx, changes(target, fields), fromPrior(byIntent(intent.ID), target), paymentFromIntent(intent, target, fields))
	if err != nil {
		return "", err
	}

	if rows == 0 {
		log.Info().Str("payment_intent_id", intent.ID).Str("status", string(target)).Msg("payment already settled")

		return metrics.ResultStale, nil
	}

	log.Info().Str("payment_intent_id", intent.ID).Str("status", string(target)).Msg("payment updated")

	return metrics.ResultOK, nil
}

// upsert applies a conditional update and, when no row matched, records the payment
// from the event instead. The reconciler is the source of truth, so a record the API
// never wrote is created here. Zero rows means the payment is already past the update.
func (w *webhookImpl) upsert(ctx context.Context, updated map[string]any, filter gDto.FilterGroup, fallback model.Payment) (int64, error) {
	rows, err := w.repo.ConditionalUpdate(ctx, updated, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to update payment: %w", err)
	}

	if rows > 0 {
		return rows, nil
	}

	inserted, err := w.repo.InsertIgnore(ctx, fallback, model.FieldPaymentIntentID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert payment: %w", err)
	}

	if inserted {
		log.Info().Str("payment_intent_id", fallback.PaymentIntentID).Str("status", string(fallback.Status)).Msg("payment recorded from webhook")

		return 1, nil
	}

	// The record exists; it was either inserted concurrently or is already past the update.
	rows, err = w.repo.ConditionalUpdate(ctx, updated, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to update payment: %w", err)
	}

	return rows, nil
}

func paymentFromIntent(intent stripe.Intent, status model.Status, fields map[string]any) model.Payment {
	now := timezone.Now()

	payment := model.Payment{
		ID:                   uuid.NewString(),
		BusinessID:           intent.Metadata[MetadataBusinessID],
		PaymentIntentID:      intent.ID,
		Amount:               money.FromMinor(intent.Amount, intent.Currency),
		Currency:             intent.Currency,
		Status:               status,
		DestinationAccountID: intent.Destination,
		ApplicationFee:       intent.ApplicationFee,
		RefundedAmount:       money.FromMinor(0, intent.Currency),
		Metadata:             gModel.NewMetadata(now, webhookActor),
	}

	if bookingID := intent.Metadata[MetadataBookingID]; bookingID != constant.Empty {
		payment.BookingID = &bookingID
	}

	if paidAt, ok := fields[model.FieldPaidAt].(time.Time); ok {
		payment.PaidAt = &paidAt
	}

	if reason, ok := fields[model.FieldFailureReason].(string); ok {
		payment.FailureReason = reason
	}

	return payment
}

func paymentFromCharge(charge stripe.Charge, refunded decimal.Decimal) model.Payment {
	payment := paymentFromIntent(stripe.Intent{
		ID:             charge.PaymentIntentID,
		Amount:         charge.Amount,
		Currency:       charge.Currency,
		Destination:    charge.Destination,
		ApplicationFee: charge.ApplicationFee,
		Metadata:       charge.Metadata,
	}, model.StatusRefunded, nil)
	payment.RefundedAmount = refunded

	return payment
}

// refunded records a refund on the payment and closes the refund on the linked booking.
// A full refund applies whatever the local status, so a refund reported before the
// success event is not lost. A partial refund only updates the refunded amount.
func (w *webhookImpl) refunded(ctx context.Context, charge stripe.Charge) (string, error) {
	if charge.PaymentIntentID == constant.Empty {
		log.Warn().Str("charge_id", charge.ID).Msg("refunded charge has no payment intent")

		return metrics.ResultIgnored, nil
	}

	amount := money.FromMinor(charge.AmountRefunded, charge.Currency)

	var (
		rows int64
		err  error
	)

	if charge.Refunded {
		rows, err = w.upsert(ctx,
			changes(model.StatusRefunded, map[string]any{model.FieldRefundedAmount: amount}),
			fromPrior(byIntent(charge.PaymentIntentID), model.StatusRefunded),
			paymentFromCharge(charge, amount))
	} else {
		rows, err = w.repo.ConditionalUpdate(ctx, map[string]any{
			model.FieldRefundedAmount: amount,
			constant.FieldModifiedAt:  timezone.Now(),
			constant.FieldModifiedBy:  webhookActor,
		}, byIntent(charge.PaymentIntentID).Append(gDto.Filter{
			ArgName:  "prior_status",
			Field:    model.FieldStatus,
			Value:    model.StatusSucceeded,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		}))
	}

	if err != nil {
		return "", fmt.Errorf("failed to record refund: %w", err)
	}

	payment, err := w.repo.Get(ctx, byIntent(charge.PaymentIntentID))
	if err != nil {
		return "", fmt.Errorf("failed to get refunded payment: %w", err)
	}

	if charge.Refunded && payment.BookingID != nil {
		err = w.bookingRepo.Update(ctx, map[string]any{
			bookingModel.FieldRefundStatus: bookingModel.RefundProcessed,
			constant.FieldModifiedAt:       timezone.Now(),
			constant.FieldModifiedBy:       webhookActor,
		}, gDto.And(
			gDto.Eq(bookingModel.TableName, bookingModel.FieldID, *payment.BookingID),
			gDto.Filter{
				ArgName:  "expected_status",
				Field:    bookingModel.FieldStatus,
				Value:    bookingModel.StatusCancelled,
				Operator: gDto.FilterOperatorEq,
				Table:    bookingModel.TableName,
			},
		))
		if err != nil {
			return "", fmt.Errorf("failed to mark booking refund processed: %w", err)
		}
	}

	if rows == 0 {
		return metrics.ResultStale, nil
	}

	log.Info().
		Str("payment_intent_id", charge.PaymentIntentID).
		Str("refunded_amount", amount.String()).
		Bool("full", charge.Refunded).
		Msg("refund recorded")

	return metrics.ResultOK, nil
}

// alert raises a dispute for an operator. Disputes are adjudicated by hand, so nothing is mutated.
func (w *webhookImpl) alert(ctx context.Context, event stripe.Event, dispute stripe.Dispute) {
	metrics.DisputesOpenedTotal.Inc()

	alert := events.DisputeAlert{
		Kind:            events.PaymentDisputeOpened,
		EventID:         event.ID,
		DisputeID:       dispute.ID,
		ChargeID:        dispute.ChargeID,
		PaymentIntentID: dispute.PaymentIntentID,
		Amount:          dispute.Amount,
		Currency:        dispute.Currency,
		Reason:          dispute.Reason,
		OccurredAt:      event.Created,
	}

	if dispute.PaymentIntentID != constant.Empty {
		payment, err := w.repo.Get(ctx, byIntent(dispute.PaymentIntentID))
		if err != nil {
			log.Warn().Err(err).Str("payment_intent_id", dispute.PaymentIntentID).Msg("failed to look up disputed payment")
		} else if payment.BookingID != nil {
			alert.BookingID = *payment.BookingID
		}
	}

	log.Error().
		Str("event_id", event.ID).
		Str("dispute_id", dispute.ID).
		Str("payment_intent_id", dispute.PaymentIntentID).
		Str("booking_id", alert.BookingID).
		Int64("amount", dispute.Amount).
		Str("reason", dispute.Reason).
		Msg("payment dispute opened, manual review required")

	w.publisher.PublishDispute(ctx, alert)
}
