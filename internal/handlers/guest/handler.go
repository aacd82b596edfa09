package guest

import (
	"net/http"
	"strconv"

	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/infras/otel"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/guest/service"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/constant"
	gDto "github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/dto"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/failure"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.Guest
	otel    otel.Otel
}

func New(service service.Guest, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/guests", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetGuests)
		routerGroup.Get("/{chatID}", handler.GetGuestByChatID)
		routerGroup.Get("/by-phone/{phone}", handler.GetGuestByPhone)
	})
}

// GetGuests retrieves all known guests.
// @Summary Get all guests
// @Description Retrieve every chat identity the bot knows, newest first.
// @Tags Guest
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetGuestsResponse] "List of guests"
// @Failure 500 {object} response.Error
// @Router /v1/guests [get]
// @Security BearerAuth
func (handler *Handler) GetGuests(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGuests")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	res, err := handler.service.GetAll(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetGuestByChatID retrieves a guest by chat id.
// @Summary Get a guest
// @Description Retrieve a guest by their chat id.
// @Tags Guest
// @Accept json
// @Produce json
// @Param chatID path int true "Chat ID"
// @Success 200 {object} response.Data[dto.GuestResponse] "Guest"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/guests/{chatID} [get]
// @Security BearerAuth
func (handler *Handler) GetGuestByChatID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGuestByChatID")
	defer scope.End()

	chatID, err := strconv.ParseInt(chi.URLParam(request, "chatID"), 10, 64)
	if err != nil {
		response.WithError(writer, failure.BadRequestFromString("chat id must be an integer"))

		return
	}

	res, err := handler.service.Get(ctx, chatID)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetGuestByPhone resolves a guest identity from a phone number.
// @Summary Resolve a guest by phone
// @Description Look up the chat identity registered with the phone.
// @Tags Guest
// @Accept json
// @Produce json
// @Param phone path string true "Phone (+7XXXXXXXXXX)"
// @Success 200 {object} response.Data[dto.GuestResponse] "Guest"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/guests/by-phone/{phone} [get]
// @Security BearerAuth
func (handler *Handler) GetGuestByPhone(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGuestByPhone")
	defer scope.End()

	phone := chi.URLParam(request, "phone")

	res, err := handler.service.ResolveByPhone(ctx, phone)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
