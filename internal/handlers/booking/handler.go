package booking

import (
	"net/http"
	"strconv"

	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/infras/otel"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/booking/model"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/booking/model/dto"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/booking/service"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/constant"
	gDto "github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/dto"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/failure"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/timezone"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/validator"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

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
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/active", handler.GetActiveBooking)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Patch("/{id}", handler.UpdateBooking)
		routerGroup.Delete("/{id}", handler.DeleteBooking)
		routerGroup.Patch("/{id}/cleaned", handler.SetCleaned)
		routerGroup.Post("/extras", handler.ChargeExtras)
	})
}

// CreateBooking handles the creation of a new stay.
// @Summary Create a new booking
// @Description Create a stay for a room. A phone matching a registered guest links the stay to their chat.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Message "Booking created successfully"
// @Failure 400 {object} response.Error
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

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyStaffEmail).(string)
	scope.AddEvent("Booking created successfully by " + user)

	response.WithMessage(writer, http.StatusCreated, "Booking created successfully")
}

// GetBookings retrieves all bookings based on query parameters.
// @Summary Get all bookings
// @Description Retrieve all bookings with optional filtering and pagination.
// @Tags Booking
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param room_number query int false "Filter by room number"
// @Param status query string false "Filter by status (booked, cancelled)"
// @Param phone query string false "Filter by phone"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	filter := dto.BookingFilter{
		Status: request.URL.Query().Get(model.FieldStatus),
		Phone:  request.URL.Query().Get(model.FieldPhone),
	}

	if roomNumber := request.URL.Query().Get(model.FieldRoomNumber); roomNumber != "" {
		if number, err := strconv.Atoi(roomNumber); err == nil {
			filter.RoomNumber = number
		}
	}

	res, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetActiveBooking resolves the stay occupying a room today.
// @Summary Get the active booking for a room
// @Description Resolve which stay occupies the room on the given date (today when omitted).
// @Tags Booking
// @Accept json
// @Produce json
// @Param room_number query int true "Room number"
// @Param date query string false "Reference date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.BookingResponse] "Active booking"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/active [get]
// @Security BearerAuth
func (handler *Handler) GetActiveBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetActiveBooking")
	defer scope.End()

	roomNumber, err := strconv.Atoi(request.URL.Query().Get(model.FieldRoomNumber))
	if err != nil || roomNumber <= 0 {
		response.WithError(writer, failure.BadRequestFromString("room_number must be a positive integer"))

		return
	}

	refDate := timezone.Now()
	if date := request.URL.Query().Get("date"); date != "" {
		parsed, err := timezone.Parse(constant.StayDateFormat, date)
		if err != nil {
			response.WithError(writer, failure.BadRequestFromString("date must look like YYYY-MM-DD"))

			return
		}

		refDate = parsed
	}

	res, err := handler.service.ActiveForRoom(ctx, roomNumber, refDate)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetBookingByID retrieves a booking by its id.
// @Summary Get a booking
// @Description Retrieve a single booking by id.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id := chi.URLParam(request, "id")

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateBooking applies partial changes to a booking.
// @Summary Update a booking
// @Description Update a booking. A room number change notifies the linked guest chat.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateBookingRequest true "Update Booking Request"
// @Success 200 {object} response.Message "Booking updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBooking")
	defer scope.End()

	id := chi.URLParam(request, "id")

	req := dto.UpdateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Booking updated successfully")
}

// DeleteBooking removes a booking.
// @Summary Delete a booking
// @Description Delete a booking by id.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message "Booking deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBooking")
	defer scope.End()

	id := chi.URLParam(request, "id")

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Booking deleted successfully")
}

// SetCleaned flags a booking's room as cleaned or not cleaned.
// @Summary Set the cleaned flag
// @Description Mark the room of a stay as cleaned or pending cleaning.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.SetCleanedRequest true "Set Cleaned Request"
// @Success 200 {object} response.Message "Cleaned flag updated"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/cleaned [patch]
// @Security BearerAuth
func (handler *Handler) SetCleaned(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetCleaned")
	defer scope.End()

	id := chi.URLParam(request, "id")

	req := dto.SetCleanedRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.SetCleaned(ctx, id, req.Cleaned); err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Cleaned flag updated")
}

// ChargeExtras adds an amount onto a stay's extras total.
// @Summary Charge extras
// @Description Add an amount to a stay's extras. Without a booking id the room's active stay is charged.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.ChargeExtrasRequest true "Charge Extras Request"
// @Success 200 {object} response.Data[string] "Charged booking id, empty when unattributed"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/extras [post]
// @Security BearerAuth
func (handler *Handler) ChargeExtras(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ChargeExtras")
	defer scope.End()

	req := dto.ChargeExtrasRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	bookingID, err := handler.service.ChargeExtras(ctx, req)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, bookingID)
}
