package router

import (
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/handlers/auth"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/handlers/booking"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/handlers/guest"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/handlers/menu"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/handlers/order"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/handlers/review"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/handlers/room"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth    auth.Handler
	Room    room.Handler
	Booking booking.Handler
	Menu    menu.Handler
	Order   order.Handler
	Guest   guest.Handler
	Review  review.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthMiddleware middleware.Auth
}

// SetupRoutes mounts the v1 API. Everything except the auth endpoints sits
// behind the bearer token middleware.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)

		routerGroup.Group(func(protected chi.Router) {
			protected.Use(r.AuthMiddleware.Auth)

			r.DomainHandlers.Room.Router(protected)
			r.DomainHandlers.Booking.Router(protected)
			r.DomainHandlers.Menu.Router(protected)
			r.DomainHandlers.Order.Router(protected)
			r.DomainHandlers.Guest.Router(protected)
			r.DomainHandlers.Review.Router(protected)
		})
	})
}

func New(domainHandlers DomainHandlers, authMiddleware middleware.Auth) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthMiddleware: authMiddleware,
	}
}
