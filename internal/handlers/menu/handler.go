package menu

import (
	"net/http"

	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/infras/otel"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/menu/model/dto"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/menu/service"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/constant"
	gDto "github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/dto"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/validator"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Menu
	otel    otel.Otel
}

func New(service service.Menu, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/menu", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateMenuItem)
		routerGroup.Get("/", handler.GetMenu)
		routerGroup.Get("/{id}", handler.GetMenuItemByID)
		routerGroup.Patch("/{id}", handler.UpdateMenuItem)
		routerGroup.Delete("/{id}", handler.DeleteMenuItem)
	})
}

// CreateMenuItem adds a dish to the menu.
// @Summary Create a menu item
// @Description Add a dish to the menu. Re-adding an existing name is a no-op.
// @Tags Menu
// @Accept json
// @Produce json
// @Param request body dto.CreateMenuItemRequest true "Create Menu Item Request"
// @Success 201 {object} response.Message "Menu item created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/menu [post]
// @Security BearerAuth
func (handler *Handler) CreateMenuItem(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateMenuItem")
	defer scope.End()

	req := dto.CreateMenuItemRequest{}

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

	response.WithMessage(writer, http.StatusCreated, "Menu item created successfully")
}

// GetMenu retrieves the menu.
// @Summary Get the menu
// @Description Retrieve menu items, optionally only those currently available.
// @Tags Menu
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param available query bool false "Only available items"
// @Success 200 {object} response.Data[dto.GetMenuResponse] "Menu"
// @Failure 500 {object} response.Error
// @Router /v1/menu [get]
// @Security BearerAuth
func (handler *Handler) GetMenu(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMenu")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	availableOnly := false
	if available := shared.ConvertStringToBool(request.URL.Query().Get("available")); available != nil {
		availableOnly = *available
	}

	res, err := handler.service.GetAll(ctx, queryParams, availableOnly)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetMenuItemByID retrieves a single menu item.
// @Summary Get a menu item
// @Description Retrieve a menu item by id.
// @Tags Menu
// @Accept json
// @Produce json
// @Param id path string true "Menu Item ID"
// @Success 200 {object} response.Data[dto.MenuItemResponse] "Menu item"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/menu/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetMenuItemByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMenuItemByID")
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

// UpdateMenuItem applies partial changes to a menu item.
// @Summary Update a menu item
// @Description Update price, category or availability of a menu item.
// @Tags Menu
// @Accept json
// @Produce json
// @Param id path string true "Menu Item ID"
// @Param request body dto.UpdateMenuItemRequest true "Update Menu Item Request"
// @Success 200 {object} response.Message "Menu item updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/menu/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateMenuItem(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateMenuItem")
	defer scope.End()

	id := chi.URLParam(request, "id")

	req := dto.UpdateMenuItemRequest{}

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

	response.WithMessage(writer, http.StatusOK, "Menu item updated successfully")
}

// DeleteMenuItem removes a menu item.
// @Summary Delete a menu item
// @Description Delete a menu item by id.
// @Tags Menu
// @Accept json
// @Produce json
// @Param id path string true "Menu Item ID"
// @Success 200 {object} response.Message "Menu item deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/menu/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteMenuItem(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteMenuItem")
	defer scope.End()

	id := chi.URLParam(request, "id")

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Menu item deleted successfully")
}
