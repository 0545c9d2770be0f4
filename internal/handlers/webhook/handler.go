package webhook

import (
	"errors"
	"io"
	"net/http"
	"sparkle/infras/otel"
	"sparkle/internal/domains/payment/service"
	"sparkle/shared/constant"
	"sparkle/shared/failure"
	"sparkle/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Webhook
	otel    otel.Otel
}

func New(service service.Webhook, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/webhooks/stripe", handler.Stripe)
}

// Stripe receives processor events. Anything that passes signature verification is
// acknowledged with 200 so the processor stops redelivering it.
// @Summary Processor webhook
// @Tags Webhook
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Event signature"
// @Success 200 {object} response.Message "Received"
// @Failure 400 {object} response.Error "Missing or invalid signature"
// @Router /v1/webhooks/stripe [post]
func (handler *Handler) Stripe(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".StripeWebhook")
	defer scope.End()

	payload, err := io.ReadAll(http.MaxBytesReader(writer, request.Body, constant.RequestMaxBodyBytes))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read webhook body")

		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.WithError(writer, failure.BadRequestFromString("payload too large"))

			return
		}

		response.WithError(writer, failure.BadRequest(err))

		return
	}

	if err = handler.service.Handle(ctx, payload, request.Header.Get(constant.RequestHeaderStripeSignature)); err != nil {
		scope.TraceError(err)

		if failure.GetCode(err) == http.StatusBadRequest {
			response.WithError(writer, err)

			return
		}

		log.Error().Err(err).Msg("webhook handling failed after verification")
	}

	response.WithMessage(writer, http.StatusOK, "received")
}
