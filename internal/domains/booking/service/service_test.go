package service_test

import (
	"context"
	"errors"
	"sparkle/config"
	"sparkle/infras/otel/mocks"
	bookingMocks "sparkle/internal/domains/booking/mocks"
	"sparkle/internal/domains/booking/model"
	"sparkle/internal/domains/booking/model/dto"
	"sparkle/internal/domains/booking/service"
	paymentMocks "sparkle/internal/domains/payment/mocks"
	paymentModel "sparkle/internal/domains/payment/model"
	paymentDto "sparkle/internal/domains/payment/model/dto"
	"sparkle/internal/events"
	eventMocks "sparkle/internal/events/mocks"
	"sparkle/shared"
	cacheMocks "sparkle/shared/cache/mocks"
	"sparkle/shared/constant"
	gDto "sparkle/shared/dto"
	"sparkle/shared/failure"
	"sparkle/shared/timezone"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var errCacheMiss = errors.New("cache miss")

type bookingFixture struct {
	svc         service.Booking
	repo        *bookingMocks.MockBooking
	paymentRepo *paymentMocks.MockPayment
	refunder    *paymentMocks.MockRefunder
	publisher   *eventMocks.MockPublisher
	cache       *cacheMocks.MockRedisCache
}

func newBookingService(t *testing.T) bookingFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := bookingFixture{
		repo:        bookingMocks.NewMockBooking(ctrl),
		paymentRepo: paymentMocks.NewMockPayment(ctrl),
		refunder:    paymentMocks.NewMockRefunder(ctrl),
		publisher:   eventMocks.NewMockPublisher(ctrl),
		cache:       cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, f.paymentRepo, f.refunder, f.publisher, cfg, f.cache, mocks.NewOtel())

	return f
}

func as(caller shared.Caller) context.Context {
	return shared.WithCaller(context.Background(), caller)
}

var (
	customer = shared.Caller{UserID: "cus-1", Role: constant.RoleCustomer}
	owner    = shared.Caller{UserID: "own-1", Role: constant.RoleBusiness, BusinessID: "biz-1"}
	admin    = shared.Caller{UserID: "adm-1", Role: constant.RoleAdmin}
	stranger = shared.Caller{UserID: "cus-9", Role: constant.RoleCustomer}
)

func booking(status model.Status) model.BookingRequest {
	return model.BookingRequest{
		ID:            "bk-1",
		CustomerID:    "cus-1",
		BusinessID:    "biz-1",
		ServiceID:     "svc-1",
		RequestedDate: time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC),
		RequestedTime: "09:30",
		TotalCost:     decimal.RequireFromString("75.00"),
		PlatformFee:   decimal.RequireFromString("11.25"),
		Status:        status,
	}
}

func capturedPayment() paymentModel.Payment {
	bookingID := "bk-1"

	return paymentModel.Payment{
		ID:                   "pay-1",
		BookingID:            &bookingID,
		PaymentIntentID:      "pi_1",
		Amount:               decimal.RequireFromString("75.00"),
		Status:               paymentModel.StatusSucceeded,
		DestinationAccountID: "acct_biz",
	}
}

func createRequest(daysAhead int, total string) dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		BusinessID:    "biz-1",
		ServiceID:     "svc-1",
		RequestedDate: timezone.Now().AddDate(0, 0, daysAhead).Format(constant.BookingDateFormat),
		RequestedTime: "09:30",
		TotalCost:     decimal.RequireFromString(total),
	}
}

func TestCreate(t *testing.T) {
	f := newBookingService(t)
	published := make(chan events.BookingEvent, 1)

	f.repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b model.BookingRequest) error {
			assert.Equal(t, "cus-1", b.CustomerID)
			assert.Equal(t, model.StatusPending, b.Status)
			assert.Equal(t, "11.25", b.PlatformFee.StringFixed(2))
			assert.NotEmpty(t, b.ID)

			return nil
		})
	f.publisher.EXPECT().
		PublishBooking(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, event events.BookingEvent) { published <- event })

	res, err := f.svc.Create(as(customer), createRequest(3, "75.00"))
	require.NoError(t, err)
	assert.Equal(t, "pending", res.Status)
	assert.Equal(t, "75.00", res.TotalCost)

	select {
	case event := <-published:
		assert.Equal(t, events.BookingCreated, event.Kind)
		assert.Equal(t, res.ID, event.BookingID)
		assert.Equal(t, "biz-1", event.BusinessID)
	case <-time.After(time.Second):
		t.Fatal("expected a booking.created event")
	}
}

func TestCreate_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		ctx    context.Context
		req    dto.CreateBookingRequest
		expect error
		code   int
	}{
		{name: "unauthenticated", ctx: context.Background(), req: createRequest(3, "75.00"), expect: failure.Unauthenticated},
		{name: "zero total", ctx: as(customer), req: createRequest(3, "0"), expect: failure.InvalidAmount},
		{name: "negative total", ctx: as(customer), req: createRequest(3, "-10"), expect: failure.InvalidAmount},
		{name: "past date", ctx: as(customer), req: createRequest(-1, "75.00"), code: 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingService(t)

			_, err := f.svc.Create(tt.ctx, tt.req)
			require.Error(t, err)

			if tt.expect != nil {
				assert.Equal(t, tt.expect, err)
			} else {
				assert.Equal(t, tt.code, failure.GetCode(err))
			}
		})
	}
}

func TestCreate_Today(t *testing.T) {
	f := newBookingService(t)

	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	f.publisher.EXPECT().PublishBooking(gomock.Any(), gomock.Any()).AnyTimes()

	_, err := f.svc.Create(as(customer), createRequest(0, "40.00"))
	assert.NoError(t, err)
}

func TestGet(t *testing.T) {
	tests := []struct {
		name   string
		caller shared.Caller
		code   int
	}{
		{name: "customer", caller: customer},
		{name: "business owner", caller: owner},
		{name: "admin", caller: admin},
		{name: "stranger", caller: stranger, code: 403},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingService(t)

			f.cache.EXPECT().Get(gomock.Any(), "booking:get:bk-1", gomock.Any()).Return(errCacheMiss)
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusPending), nil)

			res, err := f.svc.Get(as(tt.caller), "bk-1")
			if tt.code != 0 {
				assert.Equal(t, tt.code, failure.GetCode(err))
				assert.Empty(t, res.ID)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "bk-1", res.ID)
		})
	}
}

func TestGet_CachedStillChecksAccess(t *testing.T) {
	f := newBookingService(t)

	f.cache.EXPECT().
		Get(gomock.Any(), "booking:get:bk-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value any) error {
			res, ok := value.(*dto.BookingResponse)
			require.True(t, ok)
			res.FromModel(booking(model.StatusAccepted))

			return nil
		})

	res, err := f.svc.Get(as(stranger), "bk-1")
	assert.Equal(t, 403, failure.GetCode(err))
	assert.Empty(t, res.ID)
}

func TestGet_NotFound(t *testing.T) {
	f := newBookingService(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.BookingRequest{}, nil)

	_, err := f.svc.Get(as(customer), "bk-404")
	assert.Equal(t, failure.BookingNotFound, err)
}

func TestGetAll(t *testing.T) {
	f := newBookingService(t)

	params := gDto.QueryParams{Page: 1, Limit: 10}
	filter := gDto.And(gDto.Eq(model.TableName, model.FieldCustomerID, "cus-1"))

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss).Times(2)
	f.repo.EXPECT().Count(gomock.Any(), filter).Return(11, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), params, filter).Return([]model.BookingRequest{booking(model.StatusPending)}, nil)

	res, err := f.svc.GetAll(as(customer), params, filter)
	require.NoError(t, err)
	assert.Len(t, res.Bookings, 1)
	assert.Equal(t, 2, res.TotalPage)
	assert.Equal(t, 11, res.TotalData)
}

func TestTransition_Accept(t *testing.T) {
	f := newBookingService(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusPending), nil)
	f.repo.EXPECT().
		ConditionalUpdate(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, updated map[string]any, filter gDto.FilterGroup) (int64, error) {
			assert.Equal(t, model.StatusAccepted, updated[model.FieldStatus])
			assert.Equal(t, "see you at 9:30", updated[model.FieldResponseMessage])
			assert.Equal(t, "own-1", updated[constant.FieldModifiedBy])

			where, args := filter.GetWhereClause()
			assert.Contains(t, where, "booking_requests.status = :expected_status")
			assert.Equal(t, model.StatusPending, args["expected_status"])
			assert.Equal(t, "bk-1", args["id"])

			return 1, nil
		})
	f.publisher.EXPECT().PublishBooking(gomock.Any(), gomock.Any()).AnyTimes()

	res, err := f.svc.Transition(as(owner), "bk-1", dto.TransitionRequest{Status: "accepted", Message: "see you at 9:30"})
	require.NoError(t, err)
	assert.Equal(t, "accepted", res.Booking.Status)
	assert.Equal(t, "see you at 9:30", res.Booking.ResponseMessage)
	assert.Nil(t, res.Refund)
}

func TestTransition_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		caller shared.Caller
		from   model.Status
		to     string
		expect error
		code   int
	}{
		{name: "customer cannot accept", caller: customer, from: model.StatusPending, to: "accepted", code: 403},
		{name: "customer cannot complete", caller: customer, from: model.StatusAccepted, to: "completed", code: 403},
		{name: "stranger cannot cancel", caller: stranger, from: model.StatusPending, to: "cancelled", code: 403},
		{name: "pending cannot complete", caller: owner, from: model.StatusPending, to: "completed", expect: failure.InvalidTransition},
		{name: "declined is terminal", caller: admin, from: model.StatusDeclined, to: "accepted", expect: failure.InvalidTransition},
		{name: "completed cannot cancel", caller: customer, from: model.StatusCompleted, to: "cancelled", expect: failure.InvalidTransition},
		{name: "cancelled is terminal", caller: owner, from: model.StatusCancelled, to: "cancelled", expect: failure.InvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingService(t)

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(tt.from), nil)

			_, err := f.svc.Transition(as(tt.caller), "bk-1", dto.TransitionRequest{Status: tt.to})
			require.Error(t, err)

			if tt.expect != nil {
				assert.Equal(t, tt.expect, err)
			} else {
				assert.Equal(t, tt.code, failure.GetCode(err))
			}
		})
	}
}

func TestTransition_UnknownStatus(t *testing.T) {
	f := newBookingService(t)

	_, err := f.svc.Transition(as(owner), "bk-1", dto.TransitionRequest{Status: "archived"})
	assert.Equal(t, 400, failure.GetCode(err))
}

func TestTransition_NotFound(t *testing.T) {
	f := newBookingService(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.BookingRequest{}, nil)

	_, err := f.svc.Transition(as(owner), "bk-404", dto.TransitionRequest{Status: "accepted"})
	assert.Equal(t, failure.BookingNotFound, err)
}

func TestTransition_Stale(t *testing.T) {
	f := newBookingService(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusPending), nil)
	f.repo.EXPECT().ConditionalUpdate(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

	_, err := f.svc.Transition(as(owner), "bk-1", dto.TransitionRequest{Status: "declined"})
	assert.Equal(t, failure.StaleState, err)
}

func TestTransition_CancelWithoutPayment(t *testing.T) {
	f := newBookingService(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusAccepted), nil)
	f.paymentRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(paymentModel.Payment{}, nil)
	f.repo.EXPECT().
		ConditionalUpdate(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, updated map[string]any, _ gDto.FilterGroup) (int64, error) {
			assert.Equal(t, model.RoleCustomer, updated[model.FieldCancelledBy])
			assert.Equal(t, "plans changed", updated[model.FieldCancellationReason])
			assert.NotContains(t, updated, model.FieldRefundStatus)

			return 1, nil
		})
	f.publisher.EXPECT().PublishBooking(gomock.Any(), gomock.Any()).AnyTimes()

	res, err := f.svc.Transition(as(customer), "bk-1", dto.TransitionRequest{Status: "cancelled", Reason: "plans changed"})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", res.Booking.Status)
	assert.Equal(t, "customer", res.Booking.CancelledBy)
	assert.Empty(t, res.Booking.RefundStatus)
	assert.Nil(t, res.Refund)
}

func TestTransition_CancelRefunds(t *testing.T) {
	f := newBookingService(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusAccepted), nil)
	f.paymentRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup, _ ...string) (paymentModel.Payment, error) {
			_, args := filter.GetWhereClause()
			assert.Equal(t, "bk-1", args[paymentModel.FieldBookingID])
			assert.Equal(t, paymentModel.StatusSucceeded, args[paymentModel.FieldStatus])

			return capturedPayment(), nil
		})

	gomock.InOrder(
		f.repo.EXPECT().
			ConditionalUpdate(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, updated map[string]any, _ gDto.FilterGroup) (int64, error) {
				assert.Equal(t, model.StatusCancelled, updated[model.FieldStatus])
				assert.Equal(t, model.RefundPending, updated[model.FieldRefundStatus])
				assert.Equal(t, model.RoleBusiness, updated[model.FieldCancelledBy])

				return 1, nil
			}),
		f.refunder.EXPECT().
			Refund(gomock.Any(), paymentDto.RefundRequest{PaymentIntentID: "pi_1", PayoutAccountID: "acct_biz"}).
			Return(paymentDto.RefundResult{RefundID: "re_1", Status: "succeeded", SplitReversal: true}, nil),
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, updated map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.RefundProcessed, updated[model.FieldRefundStatus])
				assert.Equal(t, "re_1", updated[model.FieldRefundID])

				return nil
			}),
	)
	f.publisher.EXPECT().PublishBooking(gomock.Any(), gomock.Any()).AnyTimes()

	res, err := f.svc.Transition(as(owner), "bk-1", dto.TransitionRequest{Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, "processed", res.Booking.RefundStatus)
	assert.Equal(t, "re_1", res.Booking.RefundID)
	require.NotNil(t, res.Refund)
	assert.Equal(t, "re_1", res.Refund.RefundID)
	assert.True(t, res.Refund.SplitReversal)
}

func TestTransition_CancelRefundFailureKeepsCancellation(t *testing.T) {
	tests := []struct {
		name    string
		result  paymentDto.RefundResult
		err     error
		message string
	}{
		{name: "processor error", err: failure.ProcessorError, message: failure.ProcessorError.Message},
		{name: "unexpected error", err: errors.New("connection reset"), message: constant.ResponseErrorTryAgain},
		{name: "declined refund", result: paymentDto.RefundResult{RefundID: "re_2", Status: "failed"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingService(t)

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusPending), nil)
			f.paymentRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(capturedPayment(), nil)
			f.repo.EXPECT().ConditionalUpdate(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
			f.refunder.EXPECT().Refund(gomock.Any(), gomock.Any()).Return(tt.result, tt.err)
			f.repo.EXPECT().
				Update(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, updated map[string]any, _ gDto.FilterGroup) error {
					assert.Equal(t, model.RefundFailed, updated[model.FieldRefundStatus])
					assert.NotContains(t, updated, model.FieldRefundID)

					return errors.New("db down")
				})
			f.publisher.EXPECT().PublishBooking(gomock.Any(), gomock.Any()).AnyTimes()

			res, err := f.svc.Transition(as(customer), "bk-1", dto.TransitionRequest{Status: "cancelled"})
			require.NoError(t, err)
			assert.Equal(t, "cancelled", res.Booking.Status)
			assert.Equal(t, "failed", res.Booking.RefundStatus)
			assert.Empty(t, res.Booking.RefundID)
			require.NotNil(t, res.Refund)
			assert.Equal(t, tt.message, res.Refund.Error)
		})
	}
}

func TestTransition_CancelRefundSkipped(t *testing.T) {
	f := newBookingService(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusAccepted), nil)
	f.paymentRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(capturedPayment(), nil)
	f.repo.EXPECT().ConditionalUpdate(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
	f.refunder.EXPECT().
		Refund(gomock.Any(), gomock.Any()).
		Return(paymentDto.RefundResult{Status: paymentDto.RefundStatusSkipped, Skipped: true}, nil)
	f.publisher.EXPECT().PublishBooking(gomock.Any(), gomock.Any()).AnyTimes()

	res, err := f.svc.Transition(as(admin), "bk-1", dto.TransitionRequest{Status: "cancelled", Reason: "duplicate"})
	require.NoError(t, err)
	assert.Equal(t, "admin", res.Booking.CancelledBy)
	assert.Equal(t, "pending", res.Booking.RefundStatus)
	require.NotNil(t, res.Refund)
	assert.True(t, res.Refund.Skipped)
}

func TestTransition_PaymentLookupFails(t *testing.T) {
	f := newBookingService(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusAccepted), nil)
	f.paymentRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(paymentModel.Payment{}, errors.New("db down"))

	_, err := f.svc.Transition(as(customer), "bk-1", dto.TransitionRequest{Status: "cancelled"})
	assert.Error(t, err)
}
