package service_test

import (
	"context"
	"errors"
	"sparkle/config"
	"sparkle/infras/otel/mocks"
	"sparkle/infras/stripe"
	stripeMocks "sparkle/infras/stripe/mocks"
	paymentMocks "sparkle/internal/domains/payment/mocks"
	"sparkle/internal/domains/payment/model"
	"sparkle/internal/domains/payment/model/dto"
	"sparkle/internal/domains/payment/service"
	payoutMocks "sparkle/internal/domains/payout/mocks"
	payoutModel "sparkle/internal/domains/payout/model"
	"sparkle/shared"
	"sparkle/shared/constant"
	"sparkle/shared/failure"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type paymentFixture struct {
	svc        service.Payment
	repo       *paymentMocks.MockPayment
	payoutRepo *payoutMocks.MockPayoutAccount
	processor  *stripeMocks.MockProcessor
}

func newPaymentService(t *testing.T) paymentFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := paymentFixture{
		repo:       paymentMocks.NewMockPayment(ctrl),
		payoutRepo: payoutMocks.NewMockPayoutAccount(ctrl),
		processor:  stripeMocks.NewMockProcessor(ctrl),
	}

	f.svc = service.New(f.repo, f.payoutRepo, f.processor, &config.Config{}, mocks.NewOtel())

	return f
}

func customerCtx() context.Context {
	return shared.WithCaller(context.Background(), shared.Caller{UserID: "cus-1", Role: constant.RoleCustomer})
}

func intentRequest(amount string) dto.CreateIntentRequest {
	return dto.CreateIntentRequest{
		Amount:     decimal.RequireFromString(amount),
		Currency:   "GBP",
		BookingID:  "bk-1",
		BusinessID: "biz-1",
	}
}

func activeAccount() payoutModel.BusinessPayoutAccount {
	return payoutModel.BusinessPayoutAccount{BusinessID: "biz-1", AccountID: "acct_biz", ChargesEnabled: true}
}

func TestCreateIntent_Unauthenticated(t *testing.T) {
	f := newPaymentService(t)

	_, err := f.svc.CreateIntent(context.Background(), intentRequest("75.00"))
	assert.Equal(t, failure.Unauthenticated, err)
}

func TestCreateIntent_InvalidAmount(t *testing.T) {
	for _, amount := range []string{"0", "-5.00", "0.001"} {
		t.Run(amount, func(t *testing.T) {
			f := newPaymentService(t)

			_, err := f.svc.CreateIntent(customerCtx(), intentRequest(amount))
			assert.Equal(t, failure.InvalidAmount, err)
		})
	}
}

func TestCreateIntent_SplitHappyPath(t *testing.T) {
	f := newPaymentService(t)

	f.processor.EXPECT().Configured().Return(true)
	f.payoutRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeAccount(), nil)
	f.processor.EXPECT().
		CreatePaymentIntent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params stripe.IntentParams) (stripe.Intent, error) {
			assert.Equal(t, int64(7500), params.Amount)
			assert.Equal(t, "gbp", params.Currency)
			assert.Equal(t, "acct_biz", params.Destination)
			require.NotNil(t, params.ApplicationFee)
			assert.Equal(t, int64(1125), *params.ApplicationFee)
			assert.Equal(t, "bk-1", params.Metadata[service.MetadataBookingID])

			return stripe.Intent{
				ID:             "pi_1",
				ClientSecret:   "pi_1_secret",
				Amount:         params.Amount,
				Currency:       params.Currency,
				Destination:    params.Destination,
				ApplicationFee: *params.ApplicationFee,
			}, nil
		})
	f.repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, payment model.Payment) error {
			assert.Equal(t, "pi_1", payment.PaymentIntentID)
			assert.Equal(t, model.StatusPending, payment.Status)
			assert.Equal(t, "75", payment.Amount.String())
			require.NotNil(t, payment.BookingID)
			assert.Equal(t, "bk-1", *payment.BookingID)
			assert.True(t, payment.Split())

			return nil
		})

	res, err := f.svc.CreateIntent(customerCtx(), intentRequest("75.00"))
	require.NoError(t, err)

	assert.Equal(t, "pi_1_secret", res.ClientSecret)
	assert.Equal(t, "pi_1", res.PaymentIntentID)
	assert.True(t, res.Split)
	assert.Equal(t, int64(1125), res.PlatformFee)
	assert.False(t, res.Demo)
}

func TestCreateIntent_PlatformRouting(t *testing.T) {
	accounts := map[string]payoutModel.BusinessPayoutAccount{
		"no payout account": {},
		"charges disabled":  {BusinessID: "biz-1", AccountID: "acct_biz"},
	}

	for name, account := range accounts {
		t.Run(name, func(t *testing.T) {
			f := newPaymentService(t)

			f.processor.EXPECT().Configured().Return(true)
			f.payoutRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(account, nil)
			f.processor.EXPECT().
				CreatePaymentIntent(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, params stripe.IntentParams) (stripe.Intent, error) {
					assert.Empty(t, params.Destination)
					assert.Nil(t, params.ApplicationFee)

					return stripe.Intent{ID: "pi_2", ClientSecret: "pi_2_secret"}, nil
				})
			f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

			res, err := f.svc.CreateIntent(customerCtx(), intentRequest("75.00"))
			require.NoError(t, err)
			assert.False(t, res.Split)
			assert.Zero(t, res.PlatformFee)
		})
	}
}

func TestCreateIntent_FeeOverride(t *testing.T) {
	f := newPaymentService(t)

	override := int64(500)
	req := intentRequest("75.00")
	req.PlatformFeeOverride = &override

	f.processor.EXPECT().Configured().Return(true)
	f.payoutRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeAccount(), nil)
	f.processor.EXPECT().
		CreatePaymentIntent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params stripe.IntentParams) (stripe.Intent, error) {
			assert.Equal(t, int64(500), *params.ApplicationFee)

			return stripe.Intent{ID: "pi_3", Destination: params.Destination}, nil
		})
	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.svc.CreateIntent(customerCtx(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(500), res.PlatformFee)
}

func TestCreateIntent_FeeOverrideAboveAmount(t *testing.T) {
	f := newPaymentService(t)

	override := int64(9000)
	req := intentRequest("75.00")
	req.PlatformFeeOverride = &override

	f.processor.EXPECT().Configured().Return(true)
	f.payoutRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeAccount(), nil)

	_, err := f.svc.CreateIntent(customerCtx(), req)
	assert.Equal(t, 400, failure.GetCode(err))
}

func TestCreateIntent_SplitFeeInvariant(t *testing.T) {
	for _, amount := range []string{"0.01", "0.07", "9.99", "10.03", "75.00", "123.45", "999.99"} {
		t.Run(amount, func(t *testing.T) {
			f := newPaymentService(t)

			f.processor.EXPECT().Configured().Return(true)
			f.payoutRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeAccount(), nil)
			f.processor.EXPECT().
				CreatePaymentIntent(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, params stripe.IntentParams) (stripe.Intent, error) {
					fee := *params.ApplicationFee
					expected := decimal.NewFromInt(params.Amount).Mul(decimal.RequireFromString("0.15")).Round(0).IntPart()

					assert.Equal(t, expected, fee)
					assert.Equal(t, params.Amount, fee+(params.Amount-fee))

					return stripe.Intent{ID: "pi_x", Destination: params.Destination, ApplicationFee: fee}, nil
				})
			f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

			_, err := f.svc.CreateIntent(customerCtx(), intentRequest(amount))
			require.NoError(t, err)
		})
	}
}

func TestCreateIntent_Demo(t *testing.T) {
	f := newPaymentService(t)

	f.processor.EXPECT().Configured().Return(false)
	f.processor.EXPECT().
		CreatePaymentIntent(gomock.Any(), gomock.Any()).
		Return(stripe.Intent{ID: "pi_demo_abc", ClientSecret: "pi_demo_abc_secret_demo", Demo: true}, nil)

	res, err := f.svc.CreateIntent(customerCtx(), intentRequest("75.00"))
	require.NoError(t, err)

	assert.True(t, res.Demo)
	assert.False(t, res.Split)
	assert.Equal(t, "pi_demo_abc", res.PaymentIntentID)
}

func TestCreateIntent_ProcessorError(t *testing.T) {
	f := newPaymentService(t)

	f.processor.EXPECT().Configured().Return(true)
	f.payoutRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(payoutModel.BusinessPayoutAccount{}, nil)
	f.processor.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any()).Return(stripe.Intent{}, stripe.ErrProcessor)

	_, err := f.svc.CreateIntent(customerCtx(), intentRequest("75.00"))
	assert.Equal(t, failure.ProcessorError, err)
}

func TestCreateIntent_RecordFailureDoesNotFail(t *testing.T) {
	f := newPaymentService(t)

	f.processor.EXPECT().Configured().Return(true)
	f.payoutRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(payoutModel.BusinessPayoutAccount{}, nil)
	f.processor.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any()).Return(stripe.Intent{ID: "pi_4", ClientSecret: "s"}, nil)
	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	res, err := f.svc.CreateIntent(customerCtx(), intentRequest("75.00"))
	require.NoError(t, err)
	assert.Equal(t, "pi_4", res.PaymentIntentID)
}

func TestCreateIntent_PayoutLookupFailure(t *testing.T) {
	f := newPaymentService(t)

	f.processor.EXPECT().Configured().Return(true)
	f.payoutRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(payoutModel.BusinessPayoutAccount{}, errors.New("db down"))

	_, err := f.svc.CreateIntent(customerCtx(), intentRequest("75.00"))
	assert.Error(t, err)
}

func TestRefund(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.RefundRequest
		setupMock func(f paymentFixture)
		want      dto.RefundResult
		wantErr   error
	}{
		{
			name: "processor not configured is skipped",
			req:  dto.RefundRequest{PaymentIntentID: "pi_1"},
			setupMock: func(f paymentFixture) {
				f.processor.EXPECT().Configured().Return(false)
			},
			want: dto.RefundResult{Status: dto.RefundStatusSkipped, Skipped: true},
		},
		{
			name: "split intent reverses transfer and fee",
			req:  dto.RefundRequest{PaymentIntentID: "pi_1"},
			setupMock: func(f paymentFixture) {
				f.processor.EXPECT().Configured().Return(true)
				f.processor.EXPECT().GetPaymentIntent(gomock.Any(), "pi_1").Return(stripe.Intent{ID: "pi_1", Destination: "acct_biz"}, nil)
				f.processor.EXPECT().
					CreateRefund(gomock.Any(), stripe.RefundParams{PaymentIntentID: "pi_1", ReverseTransfer: true, RefundApplicationFee: true}).
					Return(stripe.Refund{ID: "re_1", Status: "succeeded", Amount: 7500}, nil)
			},
			want: dto.RefundResult{RefundID: "re_1", Status: "succeeded", SplitReversal: true},
		},
		{
			name: "plain intent is refunded without reversal",
			req:  dto.RefundRequest{PaymentIntentID: "pi_2"},
			setupMock: func(f paymentFixture) {
				f.processor.EXPECT().Configured().Return(true)
				f.processor.EXPECT().GetPaymentIntent(gomock.Any(), "pi_2").Return(stripe.Intent{ID: "pi_2"}, nil)
				f.processor.EXPECT().
					CreateRefund(gomock.Any(), stripe.RefundParams{PaymentIntentID: "pi_2"}).
					Return(stripe.Refund{ID: "re_2", Status: "pending"}, nil)
			},
			want: dto.RefundResult{RefundID: "re_2", Status: "pending"},
		},
		{
			name: "unknown routing with payout account assumes split",
			req:  dto.RefundRequest{PaymentIntentID: "pi_3", PayoutAccountID: "acct_biz"},
			setupMock: func(f paymentFixture) {
				f.processor.EXPECT().Configured().Return(true)
				f.processor.EXPECT().GetPaymentIntent(gomock.Any(), "pi_3").Return(stripe.Intent{}, stripe.ErrProcessor)
				f.processor.EXPECT().
					CreateRefund(gomock.Any(), stripe.RefundParams{PaymentIntentID: "pi_3", ReverseTransfer: true, RefundApplicationFee: true}).
					Return(stripe.Refund{ID: "re_3", Status: "succeeded"}, nil)
			},
			want: dto.RefundResult{RefundID: "re_3", Status: "succeeded", SplitReversal: true},
		},
		{
			name: "unknown routing without payout account fails",
			req:  dto.RefundRequest{PaymentIntentID: "pi_4"},
			setupMock: func(f paymentFixture) {
				f.processor.EXPECT().Configured().Return(true)
				f.processor.EXPECT().GetPaymentIntent(gomock.Any(), "pi_4").Return(stripe.Intent{}, stripe.ErrProcessor)
			},
			wantErr: failure.ProcessorError,
		},
		{
			name: "processor rejects refund",
			req:  dto.RefundRequest{PaymentIntentID: "pi_5"},
			setupMock: func(f paymentFixture) {
				f.processor.EXPECT().Configured().Return(true)
				f.processor.EXPECT().GetPaymentIntent(gomock.Any(), "pi_5").Return(stripe.Intent{ID: "pi_5"}, nil)
				f.processor.EXPECT().CreateRefund(gomock.Any(), gomock.Any()).Return(stripe.Refund{}, stripe.ErrProcessor)
			},
			wantErr: failure.ProcessorError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPaymentService(t)
			tt.setupMock(f)

			res, err := f.svc.Refund(context.Background(), tt.req)

			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, res)
		})
	}
}
