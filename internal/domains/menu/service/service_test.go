package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/config"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/infras/otel/mocks"
	menuMocks "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/menu/mocks"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/menu/model"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/menu/model/dto"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/menu/service"
	cacheMocks "github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/cache/mocks"
	gDto "github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/dto"
)

type menuServiceFixture struct {
	repo  *menuMocks.MockMenu
	cache *cacheMocks.MockRedisCache
	svc   service.Menu
}

func newMenuServiceFixture(t *testing.T) *menuServiceFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &menuServiceFixture{
		repo:  menuMocks.NewMockMenu(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel())

	return f
}

func TestMenuService_Create(t *testing.T) {
	req := dto.CreateMenuItemRequest{
		Name:        "Борщ",
		Price:       350,
		Description: "Со сметаной и зеленью",
		Category:    "soups",
	}

	t.Run("successful creation", func(t *testing.T) {
		f := newMenuServiceFixture(t)

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, item model.MenuItem) error {
				assert.Equal(t, "Борщ", item.Name)
				assert.Equal(t, "Со сметаной и зеленью", item.Description)
				assert.True(t, item.IsAvailable)

				return nil
			})

		assert.NoError(t, f.svc.Create(context.Background(), req))
	})

	t.Run("duplicate item name is a no-op", func(t *testing.T) {
		f := newMenuServiceFixture(t)

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(&pq.Error{Code: "23505"})

		assert.NoError(t, f.svc.Create(context.Background(), req))
	})

	t.Run("repository error", func(t *testing.T) {
		f := newMenuServiceFixture(t)

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(errors.New("database error"))

		assert.Error(t, f.svc.Create(context.Background(), req))
	})
}

func TestMenuService_GetAll(t *testing.T) {
	params := gDto.QueryParams{Limit: 10, Page: 1}

	t.Run("available-only filter is passed through", func(t *testing.T) {
		f := newMenuServiceFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))
		f.repo.EXPECT().Count(gomock.Any(), true).Return(1, nil)
		f.repo.EXPECT().
			GetAll(gomock.Any(), params, true).
			Return([]model.MenuItem{{ID: "item-1", Name: "Борщ", IsAvailable: true}}, nil)

		res, err := f.svc.GetAll(context.Background(), params, true)

		assert.NoError(t, err)
		assert.Len(t, res.Items, 1)
		assert.Equal(t, 1, res.TotalData)
	})

	t.Run("cache hit skips the repository", func(t *testing.T) {
		f := newMenuServiceFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				res := value.(*dto.GetMenuResponse)
				res.TotalData = 5

				return nil
			})

		res, err := f.svc.GetAll(context.Background(), params, false)

		assert.NoError(t, err)
		assert.Equal(t, 5, res.TotalData)
	})
}

func TestMenuService_Update(t *testing.T) {
	available := false
	req := dto.UpdateMenuItemRequest{Price: 390, IsAvailable: &available}

	t.Run("missing item", func(t *testing.T) {
		f := newMenuServiceFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), "item-1").Return(false, nil)

		assert.Error(t, f.svc.Update(context.Background(), req, "item-1"))
	})

	t.Run("successful update", func(t *testing.T) {
		f := newMenuServiceFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), "item-1").Return(true, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), "item-1").Return(nil)

		assert.NoError(t, f.svc.Update(context.Background(), req, "item-1"))
	})
}
