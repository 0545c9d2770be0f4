package payout

import (
	"net/http"
	"sparkle/infras/otel"
	"sparkle/internal/domains/payout/service"
	"sparkle/shared"
	"sparkle/shared/constant"
	"sparkle/shared/failure"
	"sparkle/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Payout
	otel    otel.Otel
}

func New(service service.Payout, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/payouts/account", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetAccount)
		routerGroup.Post("/onboard", handler.Onboard)
		routerGroup.Post("/refresh", handler.Refresh)
	})
}

func businessOf(writer http.ResponseWriter, caller shared.Caller) (string, bool) {
	if caller.BusinessID == "" {
		response.WithError(writer, failure.Forbidden("no business is linked to this account"))

		return "", false
	}

	return caller.BusinessID, true
}

// GetAccount returns the payout account of the caller's business.
// @Summary Get payout account
// @Tags Payout
// @Produce json
// @Success 200 {object} response.Data[dto.PayoutAccountResponse] "Payout account"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/payouts/account [get]
// @Security BearerAuth
func (handler *Handler) GetAccount(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPayoutAccount")
	defer scope.End()

	businessID, ok := businessOf(writer, shared.CallerFromContext(ctx))
	if !ok {
		return
	}

	res, err := handler.service.Get(ctx, businessID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("business_id", businessID).Msg("failed to get payout account")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// Onboard creates the connected account when needed and returns a hosted onboarding link.
// @Summary Start payout onboarding
// @Tags Payout
// @Produce json
// @Success 200 {object} response.Data[dto.OnboardResponse] "Onboarding link"
// @Failure 403 {object} response.Error
// @Failure 502 {object} response.Error
// @Failure 503 {object} response.Error "Processor not configured"
// @Router /v1/payouts/account/onboard [post]
// @Security BearerAuth
func (handler *Handler) Onboard(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".OnboardPayoutAccount")
	defer scope.End()

	caller := shared.CallerFromContext(ctx)

	businessID, ok := businessOf(writer, caller)
	if !ok {
		return
	}

	res, err := handler.service.Onboard(ctx, businessID, caller.Email)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("business_id", businessID).Msg("failed to onboard payout account")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// Refresh polls the processor for the latest account capabilities.
// @Summary Refresh payout account
// @Tags Payout
// @Produce json
// @Success 200 {object} response.Data[dto.PayoutAccountResponse] "Payout account"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/payouts/account/refresh [post]
// @Security BearerAuth
func (handler *Handler) Refresh(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefreshPayoutAccount")
	defer scope.End()

	businessID, ok := businessOf(writer, shared.CallerFromContext(ctx))
	if !ok {
		return
	}

	res, err := handler.service.Refresh(ctx, businessID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("business_id", businessID).Msg("failed to refresh payout account")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
