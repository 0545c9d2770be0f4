package payment

import (
	"net/http"
	"sparkle/infras/otel"
	"sparkle/internal/domains/payment/model/dto"
	"sparkle/internal/domains/payment/service"
	"sparkle/shared"
	"sparkle/shared/constant"
	"sparkle/shared/failure"
	"sparkle/shared/validator"
	"sparkle/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Payment
	otel    otel.Otel
}

func New(service service.Payment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/payments", func(routerGroup chi.Router) {
		routerGroup.Post("/intents", handler.CreateIntent)
		routerGroup.Post("/refunds", handler.Refund)
	})
}

// CreateIntent starts a card payment for a booking.
// @Summary Create a payment intent
// @Description Creates a processor payment intent. When the business can receive funds the charge is split and the platform keeps its fee.
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.CreateIntentRequest true "Create Intent Request"
// @Success 201 {object} response.Data[dto.IntentResponse] "Payment intent"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/payments/intents [post]
// @Security BearerAuth
func (handler *Handler) CreateIntent(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateIntent")
	defer scope.End()

	req := dto.CreateIntentRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.CreateIntent(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", req.BookingID).Msg("failed to create payment intent")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

// Refund returns a payment to the customer. Only admins and internal services may call it.
// @Summary Refund a payment
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.RefundRequest true "Refund Request"
// @Success 200 {object} response.Data[dto.RefundResult] "Refund"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/payments/refunds [post]
// @Security BearerAuth
// @Security ApiKeyAuth
func (handler *Handler) Refund(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Refund")
	defer scope.End()

	internal, _ := ctx.Value(constant.ContextKeyInternal).(bool)
	if !internal && !shared.CallerFromContext(ctx).IsAdmin() {
		scope.TraceError(failure.ForbiddenError)

		response.WithError(writer, failure.ForbiddenError)

		return
	}

	req := dto.RefundRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Refund(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("payment_intent_id", req.PaymentIntentID).Msg("failed to refund payment")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Refund issued by " + shared.ActorFromContext(ctx))

	response.WithJSON(writer, http.StatusOK, res)
}
