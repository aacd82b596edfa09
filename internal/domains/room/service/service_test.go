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
	s3Mocks "github.com/MishailN1kolaev/diveevo-pilgrim-admin/infras/s3/mocks"
	roomMocks "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/room/mocks"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/room/model"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/room/model/dto"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/room/service"
	cacheMocks "github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/cache/mocks"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/failure"
)

type roomServiceFixture struct {
	repo  *roomMocks.MockRoom
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
	svc   service.Room
}

func newRoomServiceFixture(t *testing.T) *roomServiceFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &roomServiceFixture{
		repo:  roomMocks.NewMockRoom(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		s3:    s3Mocks.NewMockS3(ctrl),
	}

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, cfg, f.cache, f.s3, mocks.NewOtel())

	return f
}

func TestRoomService_Create(t *testing.T) {
	req := dto.CreateRoomRequest{
		Number:   101,
		Category: "standard",
		Rate:     3500,
	}

	t.Run("successful creation", func(t *testing.T) {
		f := newRoomServiceFixture(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, f.svc.Create(context.Background(), req))
	})

	t.Run("duplicate room number is a no-op", func(t *testing.T) {
		f := newRoomServiceFixture(t)

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(&pq.Error{Code: "23505"})

		assert.NoError(t, f.svc.Create(context.Background(), req))
	})

	t.Run("repository error", func(t *testing.T) {
		f := newRoomServiceFixture(t)

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(errors.New("database error"))

		assert.Error(t, f.svc.Create(context.Background(), req))
	})
}

func TestRoomService_Get(t *testing.T) {
	t.Run("cache miss falls back to the repository", func(t *testing.T) {
		f := newRoomServiceFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))
		f.repo.EXPECT().
			Get(gomock.Any(), "room-1").
			Return(model.Room{ID: "room-1", Number: 101}, nil)

		res, err := f.svc.Get(context.Background(), "room-1")

		assert.NoError(t, err)
		assert.Equal(t, 101, res.Number)
	})

	t.Run("missing room", func(t *testing.T) {
		f := newRoomServiceFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))
		f.repo.EXPECT().
			Get(gomock.Any(), "room-1").
			Return(model.Room{}, nil)

		_, err := f.svc.Get(context.Background(), "room-1")

		assert.Error(t, err)
		assert.True(t, failure.IsNotFound(err))
	})
}

func TestRoomService_GetByNumber(t *testing.T) {
	t.Run("resolves the room", func(t *testing.T) {
		f := newRoomServiceFixture(t)

		f.repo.EXPECT().
			GetByNumber(gomock.Any(), 101).
			Return(model.Room{ID: "room-1", Number: 101}, nil)

		res, err := f.svc.GetByNumber(context.Background(), 101)

		assert.NoError(t, err)
		assert.Equal(t, "room-1", res.ID)
	})

	t.Run("unknown number", func(t *testing.T) {
		f := newRoomServiceFixture(t)

		f.repo.EXPECT().
			GetByNumber(gomock.Any(), 999).
			Return(model.Room{}, nil)

		_, err := f.svc.GetByNumber(context.Background(), 999)

		assert.Error(t, err)
		assert.True(t, failure.IsNotFound(err))
	})
}

func TestRoomService_Delete(t *testing.T) {
	t.Run("missing room", func(t *testing.T) {
		f := newRoomServiceFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), "room-1").Return(false, nil)

		err := f.svc.Delete(context.Background(), "room-1")

		assert.Error(t, err)
		assert.True(t, failure.IsNotFound(err))
	})

	t.Run("successful delete", func(t *testing.T) {
		f := newRoomServiceFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), "room-1").Return(true, nil)
		f.repo.EXPECT().Delete(gomock.Any(), "room-1").Return(nil)

		assert.NoError(t, f.svc.Delete(context.Background(), "room-1"))
	})
}
