package service

import (
	"context"
	"fmt"

	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/config"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/infras/otel"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/infras/postgres"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/menu/model/dto"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/menu/repository"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/cache"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/constant"
	gDto "github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/dto"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetMenuItem = "menu:get"
	cacheGetAllMenu  = "menu:gets"
	cacheCountMenu   = "menu:count"
)

type Menu interface {
	Create(ctx context.Context, req dto.CreateMenuItemRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, availableOnly bool) (dto.GetMenuResponse, error)
	Get(ctx context.Context, id string) (dto.MenuItemResponse, error)
	Update(ctx context.Context, req dto.UpdateMenuItemRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Menu
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Menu, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Menu {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// Create inserts a new menu item. A duplicate name is treated as a no-op so
// re-running the menu seed never fails halfway through.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateMenuItemRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyStaffEmail).(string)
	if user == constant.Empty {
		user = constant.ActorBot
	}

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		if postgres.IsUniqueViolation(err) {
			log.Info().Str("name", req.Name).Msg("menu item already exists, skipping create")

			return nil
		}

		log.Error().Err(err).Msg("failed to create menu item")

		return fmt.Errorf("failed to create menu item: %w", err)
	}

	s.invalidateListCaches(ctx)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, availableOnly bool) (res dto.GetMenuResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllMenu, req, availableOnly)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for menu")

		return res, nil
	}

	total, err := s.repo.Count(ctx, availableOnly)
	if err != nil {
		log.Error().Err(err).Msg("failed to count menu items")

		return res, fmt.Errorf("failed to count menu items: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, availableOnly)
	if err != nil {
		log.Error().Err(err).Msg("failed to get menu items")

		return res, fmt.Errorf("failed to get menu items: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save menu to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.MenuItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetMenuItem, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for menu item")

		return res, nil
	}

	item, err := s.repo.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get menu item")

		return res, fmt.Errorf("failed to get menu item: %w", err)
	}

	if item.ID == constant.Empty {
		return res, failure.NotFound("menu item") // nolint:wrapcheck
	}

	res.FromModel(item)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save menu item to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateMenuItemRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()

	if req == (dto.UpdateMenuItemRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyStaffEmail).(string)

	exist, err := s.repo.Exist(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if menu item exists")

		return fmt.Errorf("failed to check if menu item exists: %w", err)
	}

	if !exist {
		return failure.NotFound("menu item") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err := s.repo.Update(ctx, updatedFields, id); err != nil {
		log.Error().Err(err).Msg("failed to update menu item")

		return fmt.Errorf("failed to update menu item: %w", err)
	}

	s.invalidateAllCaches(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()

	exist, err := s.repo.Exist(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if menu item exists")

		return fmt.Errorf("failed to check if menu item exists: %w", err)
	}

	if !exist {
		return failure.NotFound("menu item") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error().Err(err).Msg("failed to delete menu item")

		return fmt.Errorf("failed to delete menu item: %w", err)
	}

	s.invalidateAllCaches(ctx, id)

	return nil
}

func (s *serviceImpl) invalidateListCaches(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllMenu)
		shared.InvalidateCaches(c, s.cache, cacheCountMenu)
	}()
}

func (s *serviceImpl) invalidateAllCaches(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetMenuItem, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete menu item cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllMenu)
		shared.InvalidateCaches(c, s.cache, cacheCountMenu)
	}()
}
