package payout_test

import (
	"net/http"
	"net/http/httptest"
	"sparkle/infras/otel/mocks"
	payoutMocks "sparkle/internal/domains/payout/mocks"
	"sparkle/internal/domains/payout/model/dto"
	"sparkle/internal/handlers/payout"
	"sparkle/shared"
	"sparkle/shared/failure"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T) (*chi.Mux, *payoutMocks.MockPayout) {
	t.Helper()

	svc := payoutMocks.NewMockPayout(gomock.NewController(t))
	handler := payout.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, svc
}

func serve(router http.Handler, method, path string, caller shared.Caller) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, nil)
	request = request.WithContext(shared.WithCaller(request.Context(), caller))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	return recorder
}

func TestGetAccount(t *testing.T) {
	tests := []struct {
		name   string
		caller shared.Caller
		setup  func(svc *payoutMocks.MockPayout)
		code   int
	}{
		{
			name:   "business owner",
			caller: shared.Caller{UserID: "usr-1", BusinessID: "biz-1"},
			setup: func(svc *payoutMocks.MockPayout) {
				svc.EXPECT().Get(gomock.Any(), "biz-1").Return(dto.PayoutAccountResponse{BusinessID: "biz-1", Status: "active"}, nil)
			},
			code: http.StatusOK,
		},
		{
			name:   "no business linked",
			caller: shared.Caller{UserID: "usr-1"},
			setup:  func(_ *payoutMocks.MockPayout) {},
			code:   http.StatusForbidden,
		},
		{
			name:   "not onboarded",
			caller: shared.Caller{UserID: "usr-1", BusinessID: "biz-1"},
			setup: func(svc *payoutMocks.MockPayout) {
				svc.EXPECT().Get(gomock.Any(), "biz-1").Return(dto.PayoutAccountResponse{}, failure.NotFound("payout account"))
			},
			code: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := newRouter(t)
			tt.setup(svc)

			recorder := serve(router, http.MethodGet, "/payouts/account/", tt.caller)

			assert.Equal(t, tt.code, recorder.Code)
		})
	}
}

func TestOnboard(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().
		Onboard(gomock.Any(), "biz-1", "owner@example.com").
		Return(dto.OnboardResponse{AccountID: "acct_1", OnboardingURL: "https://connect.example/onboard"}, nil)

	recorder := serve(router, http.MethodPost, "/payouts/account/onboard", shared.Caller{UserID: "usr-1", BusinessID: "biz-1", Email: "owner@example.com"})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"onboarding_url":"https://connect.example/onboard"`)
}

func TestRefresh_ProcessorDown(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().Refresh(gomock.Any(), "biz-1").Return(dto.PayoutAccountResponse{}, failure.ProcessorError)

	recorder := serve(router, http.MethodPost, "/payouts/account/refresh", shared.Caller{UserID: "usr-1", BusinessID: "biz-1"})

	assert.Equal(t, http.StatusBadGateway, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "stripe")
}
