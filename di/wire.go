//go:build wireinject
// +build wireinject

package di

import (
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/config"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/infras/jwt"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/infras/kafka"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/infras/otel"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/infras/postgres"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/infras/redis"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/infras/s3"
	botAPI "github.com/MishailN1kolaev/diveevo-pilgrim-admin/infras/telegram"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/events"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/cache"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/transport/http"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/transport/http/middleware"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/transport/http/router"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/transport/telegram"

	bookingRepository "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/booking/repository"
	bookingService "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/booking/service"
	guestRepository "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/guest/repository"
	guestService "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/guest/service"
	menuRepository "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/menu/repository"
	menuService "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/menu/service"
	orderRepository "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/order/repository"
	orderService "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/order/service"
	reviewRepository "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/review/repository"
	reviewService "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/review/service"
	roomRepository "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/room/repository"
	roomService "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/room/service"
	staffRepository "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/staff/repository"
	staffService "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/staff/service"

	authHandler "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/handlers/auth"
	bookingHandler "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/handlers/booking"
	guestHandler "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/handlers/guest"
	menuHandler "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/handlers/menu"
	orderHandler "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/handlers/order"
	reviewHandler "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/handlers/review"
	roomHandler "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/handlers/room"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
	botAPI.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	events.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var menuDomain = wire.NewSet(
	menuRepository.New,
	menuService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
	telegram.NewNotifier,
	wire.Bind(new(bookingService.Notifier), new(*telegram.Notifier)),
)

var guestDomain = wire.NewSet(
	guestRepository.New,
	guestService.New,
)

var orderDomain = wire.NewSet(
	orderRepository.New,
	orderService.New,
)

var reviewDomain = wire.NewSet(
	reviewRepository.New,
	reviewService.New,
)

var staffDomain = wire.NewSet(
	staffRepository.New,
	staffService.New,
)

var domains = wire.NewSet(
	roomDomain,
	menuDomain,
	bookingDomain,
	guestDomain,
	orderDomain,
	reviewDomain,
	staffDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	roomHandler.New,
	bookingHandler.New,
	menuHandler.New,
	orderHandler.New,
	guestHandler.New,
	reviewHandler.New,
	router.New,
)

func InitializeService() *Service {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
		telegram.New,
		wire.Struct(new(Service), "*"),
	)

	return &Service{}
}
