package notification

import (
	"net/http"
	"sparkle/infras/otel"
	"sparkle/internal/domains/notification/service"
	"sparkle/shared/constant"
	gDto "sparkle/shared/dto"
	"sparkle/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Notification
	otel    otel.Otel
}

func New(service service.Notification, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/notifications", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetNotifications)
		routerGroup.Patch("/{id}/read", handler.MarkRead)
	})
}

// GetNotifications lists notifications addressed to the caller or the caller's business.
// @Summary Get my notifications
// @Tags Notification
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetNotificationsResponse] "Notifications"
// @Failure 401 {object} response.Error
// @Router /v1/notifications [get]
// @Security BearerAuth
func (handler *Handler) GetNotifications(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetNotifications")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)
	queryParams.RestrictSort(constant.FieldCreatedAt)

	res, err := handler.service.ListMine(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get notifications")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// MarkRead marks one notification as read.
// @Summary Mark notification read
// @Tags Notification
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Message "Marked read"
// @Failure 404 {object} response.Error
// @Router /v1/notifications/{id}/read [patch]
// @Security BearerAuth
func (handler *Handler) MarkRead(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MarkNotificationRead")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.MarkRead(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("notification_id", id).Msg("failed to mark notification read")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Notification marked as read")
}
