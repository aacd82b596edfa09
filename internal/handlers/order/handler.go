package order

import (
	"net/http"
	"strconv"

	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/infras/otel"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/order/model"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/order/model/dto"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/order/service"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/constant"
	gDto "github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/dto"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/validator"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Order
	otel    otel.Otel
}

func New(service service.Order, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/orders", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.PlaceOrder)
		routerGroup.Get("/", handler.GetOrders)
		routerGroup.Get("/{id}", handler.GetOrderByID)
		routerGroup.Patch("/{id}/status", handler.UpdateOrderStatus)
	})
}

// PlaceOrder records a guest order.
// @Summary Place an order
// @Description Place an order on behalf of a guest chat. The total lands on the guest's active stay when one exists.
// @Tags Order
// @Accept json
// @Produce json
// @Param request body dto.PlaceOrderRequest true "Place Order Request"
// @Success 201 {object} response.Data[dto.OrderResponse] "Placed order"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/orders [post]
// @Security BearerAuth
func (handler *Handler) PlaceOrder(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PlaceOrder")
	defer scope.End()

	req := dto.PlaceOrderRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Place(ctx, req)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetOrders retrieves orders with optional filters.
// @Summary Get all orders
// @Description Retrieve orders with optional filtering and pagination.
// @Tags Order
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (new, in_work, done, cancelled)"
// @Param room_number query int false "Filter by room number"
// @Success 200 {object} response.Data[dto.GetOrdersResponse] "List of orders"
// @Failure 500 {object} response.Error
// @Router /v1/orders [get]
// @Security BearerAuth
func (handler *Handler) GetOrders(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOrders")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	filter := dto.OrderFilter{
		Status: request.URL.Query().Get(model.FieldStatus),
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

// GetOrderByID retrieves a single order.
// @Summary Get an order
// @Description Retrieve an order by id.
// @Tags Order
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} response.Data[dto.OrderResponse] "Order"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/orders/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetOrderByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOrderByID")
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

// UpdateOrderStatus moves an order along its workflow.
// @Summary Update order status
// @Description Set the status of an order.
// @Tags Order
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body dto.UpdateOrderStatusRequest true "Update Order Status Request"
// @Success 200 {object} response.Message "Order status updated"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/orders/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateOrderStatus(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateOrderStatus")
	defer scope.End()

	id := chi.URLParam(request, "id")

	req := dto.UpdateOrderStatusRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.UpdateStatus(ctx, req, id); err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Order status updated")
}
