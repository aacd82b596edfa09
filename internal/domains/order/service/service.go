package service

import (
	"context"
	"fmt"

	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/config"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/infras/otel"
	bookingDto "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/booking/model/dto"
	bookingService "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/booking/service"
	guestRepo "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/guest/repository"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/order/model"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/order/model/dto"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/order/repository"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/events"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/cache"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/constant"
	gDto "github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/dto"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/failure"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetOrder    = "order:get"
	cacheGetAllOrder = "order:gets"
	cacheCountOrder  = "order:count"
)

type Order interface {
	Place(ctx context.Context, req dto.PlaceOrderRequest) (dto.OrderResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter dto.OrderFilter) (dto.GetOrdersResponse, error)
	Get(ctx context.Context, id string) (dto.OrderResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateOrderStatusRequest, id string) error
}

type serviceImpl struct {
	repo      repository.Order
	guestRepo guestRepo.Guest
	bookings  bookingService.Booking
	publisher events.Publisher
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(repo repository.Order, guestRepo guestRepo.Guest, bookings bookingService.Booking, publisher events.Publisher, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Order {
	return &serviceImpl{
		repo:      repo,
		guestRepo: guestRepo,
		bookings:  bookings,
		publisher: publisher,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

// Place records a guest order. The guest's current room decides which stay the
// total lands on; a guest without an active stay still gets the order, it just
// stays unattributed. The phone is copied onto the order so the row keeps its
// contact even if the guest record changes later.
func (s *serviceImpl) Place(ctx context.Context, req dto.PlaceOrderRequest) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Place")
	defer scope.End()
	defer scope.TraceIfError(err)

	order := req.ToModel(constant.ActorBot)

	guest, err := s.guestRepo.Get(ctx, req.ChatID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get guest")

		return res, fmt.Errorf("failed to get guest: %w", err)
	}

	if guest.ChatID != 0 {
		order.Phone = guest.Phone
		order.RoomNumber = guest.CurrentRoom
	}

	if order.RoomNumber != nil {
		chargeReq := bookingDto.ChargeExtrasRequest{
			RoomNumber: *order.RoomNumber,
			Amount:     order.Total,
		}

		bookingID, err := s.bookings.ChargeExtras(ctx, chargeReq)
		if err != nil {
			log.Error().Err(err).Msg("failed to charge extras")

			return res, fmt.Errorf("failed to charge extras: %w", err)
		}

		if bookingID != constant.Empty {
			order.BookingID = &bookingID
		}
	}

	if err = s.repo.Insert(ctx, order); err != nil {
		log.Error().Err(err).Msg("failed to create order")

		return res, fmt.Errorf("failed to create order: %w", err)
	}

	event := events.OrderPlacedEvent{
		OrderID:  order.ID,
		ChatID:   req.ChatID,
		Total:    order.Total,
		PlacedAt: timezone.Now(),
	}
	if order.RoomNumber != nil {
		event.RoomNumber = *order.RoomNumber
	}
	if order.BookingID != nil {
		event.BookingID = *order.BookingID
	}

	s.publisher.OrderPlaced(ctx, event)

	s.invalidateListCaches(ctx)

	res.FromModel(order)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter dto.OrderFilter) (res dto.GetOrdersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllOrder, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for orders")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count orders")

		return res, fmt.Errorf("failed to count orders: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get orders")

		return res, fmt.Errorf("failed to get orders: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save orders to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetOrder, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for order")

		return res, nil
	}

	order, err := s.repo.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get order")

		return res, fmt.Errorf("failed to get order: %w", err)
	}

	if order.ID == constant.Empty {
		return res, failure.NotFound("order") // nolint:wrapcheck
	}

	res.FromModel(order)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save order to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateOrderStatusRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()

	user, _ := ctx.Value(constant.ContextKeyStaffEmail).(string)

	exist, err := s.repo.Exist(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if order exists")

		return fmt.Errorf("failed to check if order exists: %w", err)
	}

	if !exist {
		return failure.NotFound("order") // nolint:wrapcheck
	}

	fields := map[string]any{
		model.FieldStatus:        req.Status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.Update(ctx, fields, id); err != nil {
		log.Error().Err(err).Msg("failed to update order status")

		return fmt.Errorf("failed to update order status: %w", err)
	}

	s.invalidateAllCaches(ctx, id)

	return nil
}

func (s *serviceImpl) invalidateListCaches(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllOrder)
		shared.InvalidateCaches(c, s.cache, cacheCountOrder)
	}()
}

func (s *serviceImpl) invalidateAllCaches(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetOrder, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete order cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllOrder)
		shared.InvalidateCaches(c, s.cache, cacheCountOrder)
	}()
}
