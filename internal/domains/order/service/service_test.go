package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/config"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/infras/otel/mocks"
	bookingDto "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/booking/model/dto"
	bookingServiceMocks "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/booking/service/mocks"
	guestMocks "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/guest/mocks"
	guestModel "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/guest/model"
	orderMocks "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/order/mocks"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/order/model"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/order/model/dto"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/order/service"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/events"
	eventMocks "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/events/mocks"
	cacheMocks "github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/cache/mocks"
)

type orderServiceFixture struct {
	repo      *orderMocks.MockOrder
	guestRepo *guestMocks.MockGuest
	bookings  *bookingServiceMocks.MockBooking
	publisher *eventMocks.MockPublisher
	cache     *cacheMocks.MockRedisCache
	svc       service.Order
}

func newOrderServiceFixture(t *testing.T) *orderServiceFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &orderServiceFixture{
		repo:      orderMocks.NewMockOrder(ctrl),
		guestRepo: guestMocks.NewMockGuest(ctrl),
		bookings:  bookingServiceMocks.NewMockBooking(ctrl),
		publisher: eventMocks.NewMockPublisher(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
	}

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, f.guestRepo, f.bookings, f.publisher, cfg, f.cache, mocks.NewOtel())

	return f
}

func TestOrderService_Place(t *testing.T) {
	chatID := int64(555)
	phone := "+79991234567"
	room := 205

	req := dto.PlaceOrderRequest{
		ChatID: chatID,
		Items: []dto.OrderItemRequest{
			{Name: "Борщ", Quantity: 2, Price: 350},
			{Name: "Чай", Price: 100},
		},
	}

	// Two portions of soup plus one tea with the default quantity.
	wantTotal := 2*350.0 + 100.0

	t.Run("order lands on the guest's active stay", func(t *testing.T) {
		f := newOrderServiceFixture(t)

		f.guestRepo.EXPECT().
			Get(gomock.Any(), chatID).
			Return(guestModel.Guest{ChatID: chatID, Phone: &phone, CurrentRoom: &room}, nil)

		f.bookings.EXPECT().
			ChargeExtras(gomock.Any(), bookingDto.ChargeExtrasRequest{RoomNumber: room, Amount: wantTotal}).
			Return("booking-1", nil)

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.AssignableToTypeOf(model.Order{})).
			DoAndReturn(func(_ context.Context, order model.Order) error {
				assert.Equal(t, wantTotal, order.Total)
				assert.Equal(t, &phone, order.Phone)
				assert.Equal(t, &room, order.RoomNumber)
				assert.NotNil(t, order.BookingID)
				assert.Equal(t, "booking-1", *order.BookingID)

				return nil
			})

		f.publisher.EXPECT().
			OrderPlaced(gomock.Any(), gomock.AssignableToTypeOf(events.OrderPlacedEvent{})).
			Do(func(_ context.Context, event events.OrderPlacedEvent) {
				assert.Equal(t, chatID, event.ChatID)
				assert.Equal(t, room, event.RoomNumber)
				assert.Equal(t, "booking-1", event.BookingID)
				assert.Equal(t, wantTotal, event.Total)
			})

		res, err := f.svc.Place(context.Background(), req)

		assert.NoError(t, err)
		assert.Equal(t, wantTotal, res.Total)
	})

	t.Run("no active stay leaves the order unattributed", func(t *testing.T) {
		f := newOrderServiceFixture(t)

		f.guestRepo.EXPECT().
			Get(gomock.Any(), chatID).
			Return(guestModel.Guest{ChatID: chatID, Phone: &phone, CurrentRoom: &room}, nil)

		f.bookings.EXPECT().
			ChargeExtras(gomock.Any(), gomock.Any()).
			Return("", nil)

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.AssignableToTypeOf(model.Order{})).
			DoAndReturn(func(_ context.Context, order model.Order) error {
				assert.Nil(t, order.BookingID)

				return nil
			})

		f.publisher.EXPECT().OrderPlaced(gomock.Any(), gomock.Any())

		_, err := f.svc.Place(context.Background(), req)

		assert.NoError(t, err)
	})

	t.Run("unknown guest still gets the order", func(t *testing.T) {
		f := newOrderServiceFixture(t)

		f.guestRepo.EXPECT().
			Get(gomock.Any(), chatID).
			Return(guestModel.Guest{}, nil)

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.AssignableToTypeOf(model.Order{})).
			DoAndReturn(func(_ context.Context, order model.Order) error {
				assert.Nil(t, order.RoomNumber)
				assert.Nil(t, order.BookingID)

				return nil
			})

		f.publisher.EXPECT().OrderPlaced(gomock.Any(), gomock.Any())

		_, err := f.svc.Place(context.Background(), req)

		assert.NoError(t, err)
	})

	t.Run("charge failure aborts the order", func(t *testing.T) {
		f := newOrderServiceFixture(t)

		f.guestRepo.EXPECT().
			Get(gomock.Any(), chatID).
			Return(guestModel.Guest{ChatID: chatID, CurrentRoom: &room}, nil)

		f.bookings.EXPECT().
			ChargeExtras(gomock.Any(), gomock.Any()).
			Return("", errors.New("database error"))

		_, err := f.svc.Place(context.Background(), req)

		assert.Error(t, err)
	})

	t.Run("repository error", func(t *testing.T) {
		f := newOrderServiceFixture(t)

		f.guestRepo.EXPECT().
			Get(gomock.Any(), chatID).
			Return(guestModel.Guest{}, nil)

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(errors.New("database error"))

		_, err := f.svc.Place(context.Background(), req)

		assert.Error(t, err)
	})
}

func TestOrderService_UpdateStatus(t *testing.T) {
	t.Run("status change", func(t *testing.T) {
		f := newOrderServiceFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), "order-1").Return(true, nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), "order-1").
			DoAndReturn(func(_ context.Context, fields map[string]any, _ string) error {
				assert.Equal(t, "done", fields[model.FieldStatus])

				return nil
			})

		err := f.svc.UpdateStatus(context.Background(), dto.UpdateOrderStatusRequest{Status: "done"}, "order-1")

		assert.NoError(t, err)
	})

	t.Run("missing order", func(t *testing.T) {
		f := newOrderServiceFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), "order-1").Return(false, nil)

		err := f.svc.UpdateStatus(context.Background(), dto.UpdateOrderStatusRequest{Status: "done"}, "order-1")

		assert.Error(t, err)
	})
}
