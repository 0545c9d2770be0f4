package booking

import (
	"net/http"
	"sparkle/infras/otel"
	"sparkle/internal/domains/booking/model"
	"sparkle/internal/domains/booking/model/dto"
	"sparkle/internal/domains/booking/service"
	"sparkle/shared"
	"sparkle/shared/constant"
	gDto "sparkle/shared/dto"
	"sparkle/shared/failure"
	"sparkle/shared/validator"
	"sparkle/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

var sortableColumns = []string{model.FieldRequestedDate, model.FieldStatus, constant.FieldCreatedAt}

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/mine", handler.GetMyBookings)
		routerGroup.Get("/business", handler.GetBusinessBookings)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Patch("/{id}/status", handler.TransitionBooking)
	})
}

// CreateBooking handles the creation of a new booking request.
// @Summary Request a booking
// @Description Create a pending booking request for a business service. The date must not be in the past.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse] "Booking created"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking " + res.ID + " requested by user " + res.CustomerID)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetMyBookings lists the bookings the caller made as a customer.
// @Summary Get my bookings
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (pending, accepted, declined, cancelled, completed)"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyBookings")
	defer scope.End()

	caller := shared.CallerFromContext(ctx)
	filter := gDto.And(gDto.Eq(model.TableName, model.FieldCustomerID, caller.UserID))

	handler.list(writer, request.WithContext(ctx), scope, filter)
}

// GetBusinessBookings lists the bookings made with the caller's business. Admins may
// pass business_id to look at any business.
// @Summary Get business bookings
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Param business_id query string false "Business to list (admin only)"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/business [get]
// @Security BearerAuth
func (handler *Handler) GetBusinessBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBusinessBookings")
	defer scope.End()

	caller := shared.CallerFromContext(ctx)

	businessID := caller.BusinessID
	if caller.IsAdmin() {
		if requested := request.URL.Query().Get(model.FieldBusinessID); requested != "" {
			businessID = requested
		}
	}

	if businessID == "" {
		err := failure.Forbidden("no business is linked to this account")
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	filter := gDto.And(gDto.Eq(model.TableName, model.FieldBusinessID, businessID))

	handler.list(writer, request.WithContext(ctx), scope, filter)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request, scope otel.Scope, filter gDto.FilterGroup) {
	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)
	queryParams.RestrictSort(sortableColumns...)

	if status := request.URL.Query().Get(model.FieldStatus); status != "" {
		if _, err := model.ParseStatus(status); err != nil {
			scope.TraceError(err)

			response.WithError(writer, failure.BadRequest(err))

			return
		}

		filter = filter.Append(gDto.Eq(model.TableName, model.FieldStatus, status))
	}

	res, err := handler.service.GetAll(request.Context(), queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetBookingByID returns one booking to one of its parties or an admin.
// @Summary Get a booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// TransitionBooking moves a booking to a new status. Cancelling a paid booking
// refunds the customer; the refund outcome is reported alongside the booking.
// @Summary Change booking status
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.TransitionRequest true "Transition Request"
// @Success 200 {object} response.Data[dto.TransitionResponse] "Updated booking"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error "Illegal transition or concurrent change"
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) TransitionBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".TransitionBooking")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)
	req := dto.TransitionRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Transition(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Str("status", req.Status).Msg("failed to transition booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking " + id + " moved to " + req.Status)

	response.WithJSON(writer, http.StatusOK, res)
}
