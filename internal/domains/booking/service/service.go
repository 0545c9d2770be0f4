package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"fmt"
	"sparkle/config"
	"sparkle/infras/otel"
	"sparkle/internal/domains/booking/model"
	"sparkle/internal/domains/booking/model/dto"
	"sparkle/internal/domains/booking/repository"
	paymentModel "sparkle/internal/domains/payment/model"
	paymentDto "sparkle/internal/domains/payment/model/dto"
	paymentRepo "sparkle/internal/domains/payment/repository"
	paymentService "sparkle/internal/domains/payment/service"
	"sparkle/internal/events"
	"sparkle/shared"
	"sparkle/shared/cache"
	"sparkle/shared/constant"
	gDto "sparkle/shared/dto"
	"sparkle/shared/failure"
	"sparkle/shared/metrics"
	"sparkle/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

const resultRejected = "rejected"

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Transition(ctx context.Context, id string, req dto.TransitionRequest) (dto.TransitionResponse, error)
}

type serviceImpl struct {
	repo        repository.Booking
	paymentRepo paymentRepo.Payment
	refunder    paymentService.Refunder
	publisher   events.Publisher
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	repo repository.Booking,
	paymentRepo paymentRepo.Payment,
	refunder paymentService.Refunder,
	publisher events.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:        repo,
		paymentRepo: paymentRepo,
		refunder:    refunder,
		publisher:   publisher,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	caller := shared.CallerFromContext(ctx)
	if !caller.Authenticated() {
		return res, failure.Unauthenticated // nolint:wrapcheck
	}

	if !req.TotalCost.IsPositive() {
		return res, failure.InvalidAmount // nolint:wrapcheck
	}

	now := timezone.Now()

	booking, err := req.ToModel(caller.UserID, now)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid requested date: %v", err)) // nolint:wrapcheck
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if booking.RequestedDate.Before(today) {
		return res, failure.BadRequestFromString("requested date cannot be in the past") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	metrics.BookingsCreatedTotal.Inc()

	go func() {
		c := context.WithoutCancel(ctx)

		s.publisher.PublishBooking(c, events.BookingEvent{
			Kind:       events.BookingCreated,
			BookingID:  booking.ID,
			CustomerID: booking.CustomerID,
			BusinessID: booking.BusinessID,
			To:         booking.Status.String(),
			ActorRole:  model.RoleCustomer,
			Actor:      caller.UserID,
			OccurredAt: now,
		})

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

// Get reads through the cache. Access is checked on every read, cached or not.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	caller := shared.CallerFromContext(ctx)
	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		if err = canRead(caller, model.BookingRequest{CustomerID: res.CustomerID, BusinessID: res.BusinessID}); err != nil {
			return dto.BookingResponse{}, err
		}

		return res, nil
	}

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if err = canRead(caller, booking); err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.BookingRequest, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.BookingNotFound // nolint:wrapcheck
	}

	return booking, nil
}

func canRead(caller shared.Caller, booking model.BookingRequest) error {
	if _, err := actorRole(caller, booking); err != nil {
		return err
	}

	return nil
}

// actorRole decides in which capacity the caller acts on the booking.
func actorRole(caller shared.Caller, booking model.BookingRequest) (string, error) {
	if !caller.Authenticated() {
		return "", failure.Unauthenticated // nolint:wrapcheck
	}

	if caller.IsAdmin() {
		return model.RoleAdmin, nil
	}

	role, ok := booking.PartyRole(caller.UserID, caller.BusinessID)
	if !ok {
		return "", failure.Forbidden("you are not a party to this booking") // nolint:wrapcheck
	}

	return role, nil
}

func (s *serviceImpl) Transition(ctx context.Context, id string, req dto.TransitionRequest) (res dto.TransitionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Transition")
	defer scope.End()
	defer scope.TraceIfError(err)

	caller := shared.CallerFromContext(ctx)

	target, err := model.ParseStatus(req.Status)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	role, err := actorRole(caller, booking)
	if err != nil {
		return res, err
	}

	from := booking.Status

	if err = model.Authorize(from, target, role); err != nil {
		metrics.BookingTransitionsTotal.WithLabelValues(target.String(), resultRejected).Inc()
		log.Warn().Str("booking_id", id).Str("from", from.String()).Str("to", target.String()).Str("role", role).Msg("booking transition rejected")

		return res, err
	}

	now := timezone.Now()
	updated := map[string]any{
		model.FieldStatus:        target,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: caller.UserID,
	}

	var payment paymentModel.Payment

	if target == model.StatusCancelled {
		updated[model.FieldCancelledBy] = role
		if req.Reason != constant.Empty {
			updated[model.FieldCancellationReason] = req.Reason
		}

		payment, err = s.capturedPayment(ctx, id)
		if err != nil {
			return res, err
		}

		if payment.ID != constant.Empty {
			updated[model.FieldRefundStatus] = model.RefundPending
		}
	} else if req.Message != constant.Empty {
		updated[model.FieldResponseMessage] = req.Message
	}

	rows, err := s.repo.ConditionalUpdate(ctx, updated, expectStatus(id, from))
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to update booking status")

		return res, fmt.Errorf("failed to update booking status: %w", err)
	}

	if rows == 0 {
		metrics.BookingTransitionsTotal.WithLabelValues(target.String(), metrics.ResultStale).Inc()
		log.Warn().Str("booking_id", id).Str("expected", from.String()).Msg("booking changed concurrently")

		return res, failure.StaleState // nolint:wrapcheck
	}

	booking.Status = target
	booking.ModifiedAt = now
	booking.ModifiedBy = caller.UserID

	if target == model.StatusCancelled {
		booking.CancelledBy = role
		booking.CancellationReason = req.Reason
	} else if req.Message != constant.Empty {
		booking.ResponseMessage = req.Message
	}

	if payment.ID != constant.Empty {
		booking.RefundStatus = model.RefundPending
		res.Refund = s.refund(ctx, &booking, payment)
	}

	metrics.BookingTransitionsTotal.WithLabelValues(target.String(), metrics.ResultOK).Inc()

	go func() {
		c := context.WithoutCancel(ctx)

		s.publisher.PublishBooking(c, events.BookingEvent{
			Kind:         events.BookingStatusChanged,
			BookingID:    booking.ID,
			CustomerID:   booking.CustomerID,
			BusinessID:   booking.BusinessID,
			From:         from.String(),
			To:           target.String(),
			ActorRole:    role,
			Actor:        caller.UserID,
			Reason:       req.Reason,
			RefundStatus: booking.RefundStatus,
			OccurredAt:   now,
		})

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	res.Booking.FromModel(booking)

	return res, nil
}

func expectStatus(id string, status model.Status) gDto.FilterGroup {
	return gDto.And(
		gDto.Eq(model.TableName, model.FieldID, id),
		gDto.Filter{
			ArgName:  "expected_status",
			Field:    model.FieldStatus,
			Value:    status,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		},
	)
}

// capturedPayment returns the succeeded payment of the booking, or a zero payment.
func (s *serviceImpl) capturedPayment(ctx context.Context, bookingID string) (paymentModel.Payment, error) {
	payment, err := s.paymentRepo.Get(ctx, gDto.And(
		gDto.Eq(paymentModel.TableName, paymentModel.FieldBookingID, bookingID),
		gDto.Eq(paymentModel.TableName, paymentModel.FieldStatus, paymentModel.StatusSucceeded),
	))
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to get booking payment")

		return payment, fmt.Errorf("failed to get booking payment: %w", err)
	}

	return payment, nil
}

// refund returns the customer's money after a cancellation. Whatever happens is
// recorded on the booking; the cancellation itself stands.
func (s *serviceImpl) refund(ctx context.Context, booking *model.BookingRequest, payment paymentModel.Payment) *dto.RefundOutcome {
	result, err := s.refunder.Refund(ctx, paymentDto.RefundRequest{
		PaymentIntentID: payment.PaymentIntentID,
		PayoutAccountID: payment.DestinationAccountID,
	})

	outcome := &dto.RefundOutcome{
		RefundID:      result.RefundID,
		SplitReversal: result.SplitReversal,
		Skipped:       result.Skipped,
	}

	switch {
	case err != nil:
		log.Error().Err(err).Str("booking_id", booking.ID).Str("payment_intent_id", payment.PaymentIntentID).Msg("refund failed, needs manual follow-up")

		booking.RefundStatus = model.RefundFailed
		outcome.Error = constant.ResponseErrorTryAgain

		if failure.IsFailure(err) {
			outcome.Error = err.Error()
		}
	case result.Skipped:
		log.Warn().Str("booking_id", booking.ID).Msg("refund skipped, processor not configured")

		outcome.Status = booking.RefundStatus

		return outcome
	case result.Failed():
		log.Error().Str("booking_id", booking.ID).Str("refund_id", result.RefundID).Str("status", result.Status).Msg("processor declined refund")

		booking.RefundStatus = model.RefundFailed
		outcome.RefundID = constant.Empty
	default:
		booking.RefundStatus = model.RefundProcessed
		booking.RefundID = result.RefundID
	}

	outcome.Status = booking.RefundStatus

	updated := map[string]any{
		model.FieldRefundStatus:  booking.RefundStatus,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: booking.ModifiedBy,
	}

	if booking.RefundID != constant.Empty {
		updated[model.FieldRefundID] = booking.RefundID
	}

	if err := s.repo.Update(ctx, updated, shared.FilterByID(booking.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Str("refund_status", booking.RefundStatus).Msg("failed to record refund outcome")
	}

	return outcome
}
