package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/config"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/infras/otel/mocks"
	bookingMocks "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/booking/mocks"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/booking/model"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/booking/model/dto"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/booking/service"
	serviceMocks "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/booking/service/mocks"
	guestMocks "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/guest/mocks"
	guestModel "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/guest/model"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/events"
	eventMocks "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/events/mocks"
	cacheMocks "github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/cache/mocks"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/failure"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/timezone"
)

type bookingServiceFixture struct {
	repo      *bookingMocks.MockBooking
	guestRepo *guestMocks.MockGuest
	notifier  *serviceMocks.MockNotifier
	publisher *eventMocks.MockPublisher
	cache     *cacheMocks.MockRedisCache
	svc       service.Booking
}

func newBookingServiceFixture(t *testing.T) *bookingServiceFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &bookingServiceFixture{
		repo:      bookingMocks.NewMockBooking(ctrl),
		guestRepo: guestMocks.NewMockGuest(ctrl),
		notifier:  serviceMocks.NewMockNotifier(ctrl),
		publisher: eventMocks.NewMockPublisher(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
	}

	// Cache writes and invalidations run on detached goroutines.
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, f.guestRepo, f.notifier, f.publisher, cfg, f.cache, mocks.NewOtel())

	return f
}

func stayOver(roomNumber int, checkIn time.Time, nights int) model.Booking {
	return model.Booking{
		ID:         "booking-" + checkIn.Format("2006-01-02"),
		RoomNumber: roomNumber,
		GuestName:  "Guest",
		CheckIn:    checkIn,
		CheckOut:   checkIn.AddDate(0, 0, nights),
		Status:     "booked",
	}
}

func TestBookingService_Create(t *testing.T) {
	phone := "+79991234567"

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func(f *bookingServiceFixture)
		wantErr   bool
	}{
		{
			name: "successful creation without phone",
			req: dto.CreateBookingRequest{
				RoomNumber: 101,
				GuestName:  "Ivan Petrov",
				CheckIn:    "2026-09-01",
				CheckOut:   "2026-09-05",
				Rate:       3500,
			},
			setupMock: func(f *bookingServiceFixture) {
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "phone of a registered guest links the stay",
			req: dto.CreateBookingRequest{
				RoomNumber: 102,
				GuestName:  "Ivan Petrov",
				Phone:      phone,
				CheckIn:    "2026-09-01",
				CheckOut:   "2026-09-05",
				Rate:       3500,
			},
			setupMock: func(f *bookingServiceFixture) {
				f.guestRepo.EXPECT().
					GetByPhone(gomock.Any(), phone).
					Return(guestModel.Guest{ChatID: 555, Phone: &phone}, nil)

				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.AssignableToTypeOf(model.Booking{})).
					DoAndReturn(func(_ context.Context, booking model.Booking) error {
						assert.NotNil(t, booking.GuestChatID)
						assert.Equal(t, int64(555), *booking.GuestChatID)

						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "check out before check in",
			req: dto.CreateBookingRequest{
				RoomNumber: 101,
				GuestName:  "Ivan Petrov",
				CheckIn:    "2026-09-05",
				CheckOut:   "2026-09-01",
				Rate:       3500,
			},
			setupMock: func(_ *bookingServiceFixture) {},
			wantErr:   true,
		},
		{
			name: "unparseable dates",
			req: dto.CreateBookingRequest{
				RoomNumber: 101,
				GuestName:  "Ivan Petrov",
				CheckIn:    "01.09.2026",
				CheckOut:   "05.09.2026",
				Rate:       3500,
			},
			setupMock: func(_ *bookingServiceFixture) {},
			wantErr:   true,
		},
		{
			name: "repository error",
			req: dto.CreateBookingRequest{
				RoomNumber: 101,
				GuestName:  "Ivan Petrov",
				CheckIn:    "2026-09-01",
				CheckOut:   "2026-09-05",
				Rate:       3500,
			},
			setupMock: func(f *bookingServiceFixture) {
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingServiceFixture(t)
			tt.setupMock(f)

			err := f.svc.Create(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_ActiveForRoom(t *testing.T) {
	refDate := time.Date(2026, 9, 3, 12, 0, 0, 0, time.UTC)

	t.Run("latest check-in wins among overlapping stays", func(t *testing.T) {
		f := newBookingServiceFixture(t)

		late := stayOver(101, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), 5)
		early := stayOver(101, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), 5)

		// Repository orders by check-in descending.
		f.repo.EXPECT().
			GetByRoom(gomock.Any(), 101).
			Return([]model.Booking{late, early}, nil)

		res, err := f.svc.ActiveForRoom(context.Background(), 101, refDate)

		assert.NoError(t, err)
		assert.Equal(t, late.ID, res.ID)
	})

	t.Run("stays outside the date are skipped", func(t *testing.T) {
		f := newBookingServiceFixture(t)

		future := stayOver(101, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), 3)
		covering := stayOver(101, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), 5)

		f.repo.EXPECT().
			GetByRoom(gomock.Any(), 101).
			Return([]model.Booking{future, covering}, nil)

		res, err := f.svc.ActiveForRoom(context.Background(), 101, refDate)

		assert.NoError(t, err)
		assert.Equal(t, covering.ID, res.ID)
	})

	t.Run("no covering stay", func(t *testing.T) {
		f := newBookingServiceFixture(t)

		f.repo.EXPECT().
			GetByRoom(gomock.Any(), 101).
			Return([]model.Booking{}, nil)

		_, err := f.svc.ActiveForRoom(context.Background(), 101, refDate)

		assert.Error(t, err)
		assert.True(t, failure.IsNotFound(err))
	})

	t.Run("repository error", func(t *testing.T) {
		f := newBookingServiceFixture(t)

		f.repo.EXPECT().
			GetByRoom(gomock.Any(), 101).
			Return(nil, errors.New("database error"))

		_, err := f.svc.ActiveForRoom(context.Background(), 101, refDate)

		assert.Error(t, err)
	})
}

func TestBookingService_ChargeExtras(t *testing.T) {
	t.Run("explicit booking id pins the charge", func(t *testing.T) {
		f := newBookingServiceFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), "booking-1").Return(true, nil)
		f.repo.EXPECT().AddExtras(gomock.Any(), "booking-1", 450.0).Return(nil)

		bookingID, err := f.svc.ChargeExtras(context.Background(), dto.ChargeExtrasRequest{
			RoomNumber: 101,
			Amount:     450,
			BookingID:  "booking-1",
		})

		assert.NoError(t, err)
		assert.Equal(t, "booking-1", bookingID)
	})

	t.Run("unknown booking id", func(t *testing.T) {
		f := newBookingServiceFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), "booking-1").Return(false, nil)

		_, err := f.svc.ChargeExtras(context.Background(), dto.ChargeExtrasRequest{
			RoomNumber: 101,
			Amount:     450,
			BookingID:  "booking-1",
		})

		assert.Error(t, err)
		assert.True(t, failure.IsNotFound(err))
	})

	t.Run("charge lands on the active stay", func(t *testing.T) {
		f := newBookingServiceFixture(t)

		active := stayOver(101, timezone.Now().AddDate(0, 0, -1), 4)

		f.repo.EXPECT().GetByRoom(gomock.Any(), 101).Return([]model.Booking{active}, nil)
		f.repo.EXPECT().AddExtras(gomock.Any(), active.ID, 450.0).Return(nil)

		bookingID, err := f.svc.ChargeExtras(context.Background(), dto.ChargeExtrasRequest{
			RoomNumber: 101,
			Amount:     450,
		})

		assert.NoError(t, err)
		assert.Equal(t, active.ID, bookingID)
	})

	t.Run("no active stay keeps the charge unattributed", func(t *testing.T) {
		f := newBookingServiceFixture(t)

		f.repo.EXPECT().GetByRoom(gomock.Any(), 101).Return([]model.Booking{}, nil)

		bookingID, err := f.svc.ChargeExtras(context.Background(), dto.ChargeExtrasRequest{
			RoomNumber: 101,
			Amount:     450,
		})

		assert.NoError(t, err)
		assert.Empty(t, bookingID)
	})

	t.Run("increment failure surfaces", func(t *testing.T) {
		f := newBookingServiceFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), "booking-1").Return(true, nil)
		f.repo.EXPECT().AddExtras(gomock.Any(), "booking-1", 450.0).Return(errors.New("database error"))

		_, err := f.svc.ChargeExtras(context.Background(), dto.ChargeExtrasRequest{
			RoomNumber: 101,
			Amount:     450,
			BookingID:  "booking-1",
		})

		assert.Error(t, err)
	})
}

func TestBookingService_Update_RoomChange(t *testing.T) {
	chatID := int64(555)

	currentStay := func() model.Booking {
		stay := stayOver(101, timezone.Now().AddDate(0, 0, -1), 4)
		stay.ID = "booking-1"
		stay.GuestChatID = &chatID

		return stay
	}

	req := dto.UpdateBookingRequest{RoomNumber: 205}

	t.Run("guest is notified and re-synced, event published", func(t *testing.T) {
		f := newBookingServiceFixture(t)
		existing := currentStay()

		f.repo.EXPECT().Get(gomock.Any(), "booking-1").Return(existing, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), "booking-1").Return(nil)
		f.notifier.EXPECT().NotifyRoomChange(gomock.Any(), chatID, 101, 205).Return(nil)
		f.guestRepo.EXPECT().
			SetCurrentRoom(gomock.Any(), chatID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, room *int) error {
				assert.NotNil(t, room)
				assert.Equal(t, 205, *room)

				return nil
			})
		f.publisher.EXPECT().
			RoomReassigned(gomock.Any(), gomock.AssignableToTypeOf(events.RoomReassignedEvent{})).
			Do(func(_ context.Context, event events.RoomReassignedEvent) {
				assert.Equal(t, "booking-1", event.BookingID)
				assert.Equal(t, 101, event.OldRoom)
				assert.Equal(t, 205, event.NewRoom)
				assert.Equal(t, chatID, event.ChatID)
			})

		assert.NoError(t, f.svc.Update(context.Background(), req, "booking-1"))
	})

	t.Run("notifier failure does not undo the move", func(t *testing.T) {
		f := newBookingServiceFixture(t)
		existing := currentStay()

		f.repo.EXPECT().Get(gomock.Any(), "booking-1").Return(existing, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), "booking-1").Return(nil)
		f.notifier.EXPECT().
			NotifyRoomChange(gomock.Any(), chatID, 101, 205).
			Return(errors.New("chat unreachable"))
		f.guestRepo.EXPECT().SetCurrentRoom(gomock.Any(), chatID, gomock.Any()).Return(nil)
		f.publisher.EXPECT().RoomReassigned(gomock.Any(), gomock.Any())

		assert.NoError(t, f.svc.Update(context.Background(), req, "booking-1"))
	})

	t.Run("unlinked stay skips the notification", func(t *testing.T) {
		f := newBookingServiceFixture(t)
		existing := currentStay()
		existing.GuestChatID = nil

		f.repo.EXPECT().Get(gomock.Any(), "booking-1").Return(existing, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), "booking-1").Return(nil)
		f.publisher.EXPECT().RoomReassigned(gomock.Any(), gomock.Any())

		assert.NoError(t, f.svc.Update(context.Background(), req, "booking-1"))
	})

	t.Run("past stay does not touch the current room", func(t *testing.T) {
		f := newBookingServiceFixture(t)
		existing := currentStay()
		existing.CheckIn = timezone.Now().AddDate(0, 0, -30)
		existing.CheckOut = timezone.Now().AddDate(0, 0, -25)

		f.repo.EXPECT().Get(gomock.Any(), "booking-1").Return(existing, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), "booking-1").Return(nil)
		f.notifier.EXPECT().NotifyRoomChange(gomock.Any(), chatID, 101, 205).Return(nil)
		f.publisher.EXPECT().RoomReassigned(gomock.Any(), gomock.Any())

		assert.NoError(t, f.svc.Update(context.Background(), req, "booking-1"))
	})

	t.Run("missing booking", func(t *testing.T) {
		f := newBookingServiceFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), "booking-1").Return(model.Booking{}, nil)

		err := f.svc.Update(context.Background(), req, "booking-1")

		assert.Error(t, err)
		assert.True(t, failure.IsNotFound(err))
	})
}

func TestBookingService_Update_PhoneChange(t *testing.T) {
	newPhone := "+79990000000"

	unlinkedStay := func() model.Booking {
		stay := stayOver(101, timezone.Now().AddDate(0, 0, -1), 4)
		stay.ID = "booking-1"

		return stay
	}

	t.Run("new phone re-binds the stay to its owner", func(t *testing.T) {
		f := newBookingServiceFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), "booking-1").Return(unlinkedStay(), nil)
		f.guestRepo.EXPECT().GetByPhone(gomock.Any(), newPhone).Return(guestModel.Guest{ChatID: 555}, nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), "booking-1").
			DoAndReturn(func(_ context.Context, fields map[string]any, _ string) error {
				linked, ok := fields[model.FieldGuestChatID].(*int64)
				assert.True(t, ok)
				assert.NotNil(t, linked)
				assert.Equal(t, int64(555), *linked)

				return nil
			})

		req := dto.UpdateBookingRequest{Phone: newPhone}

		assert.NoError(t, f.svc.Update(context.Background(), req, "booking-1"))
	})

	t.Run("room change after re-bind notifies the new owner", func(t *testing.T) {
		f := newBookingServiceFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), "booking-1").Return(unlinkedStay(), nil)
		f.guestRepo.EXPECT().GetByPhone(gomock.Any(), newPhone).Return(guestModel.Guest{ChatID: 555}, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), "booking-1").Return(nil)
		f.notifier.EXPECT().NotifyRoomChange(gomock.Any(), int64(555), 101, 205).Return(nil)
		f.guestRepo.EXPECT().SetCurrentRoom(gomock.Any(), int64(555), gomock.Any()).Return(nil)
		f.publisher.EXPECT().
			RoomReassigned(gomock.Any(), gomock.Any()).
			Do(func(_ context.Context, event events.RoomReassignedEvent) {
				assert.Equal(t, int64(555), event.ChatID)
			})

		req := dto.UpdateBookingRequest{RoomNumber: 205, Phone: newPhone}

		assert.NoError(t, f.svc.Update(context.Background(), req, "booking-1"))
	})

	t.Run("unregistered phone clears the old link", func(t *testing.T) {
		f := newBookingServiceFixture(t)

		chatID := int64(777)
		existing := unlinkedStay()
		oldPhone := "+79991112233"
		existing.Phone = &oldPhone
		existing.GuestChatID = &chatID

		f.repo.EXPECT().Get(gomock.Any(), "booking-1").Return(existing, nil)
		f.guestRepo.EXPECT().GetByPhone(gomock.Any(), newPhone).Return(guestModel.Guest{}, nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), "booking-1").
			DoAndReturn(func(_ context.Context, fields map[string]any, _ string) error {
				linked, ok := fields[model.FieldGuestChatID].(*int64)
				assert.True(t, ok)
				assert.Nil(t, linked)

				return nil
			})

		req := dto.UpdateBookingRequest{Phone: newPhone}

		assert.NoError(t, f.svc.Update(context.Background(), req, "booking-1"))
	})

	t.Run("unchanged phone is not re-resolved", func(t *testing.T) {
		f := newBookingServiceFixture(t)

		existing := unlinkedStay()
		existing.Phone = &newPhone

		f.repo.EXPECT().Get(gomock.Any(), "booking-1").Return(existing, nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), "booking-1").
			DoAndReturn(func(_ context.Context, fields map[string]any, _ string) error {
				_, ok := fields[model.FieldGuestChatID]
				assert.False(t, ok)

				return nil
			})

		req := dto.UpdateBookingRequest{Phone: newPhone}

		assert.NoError(t, f.svc.Update(context.Background(), req, "booking-1"))
	})

	t.Run("lookup failure aborts the update", func(t *testing.T) {
		f := newBookingServiceFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), "booking-1").Return(unlinkedStay(), nil)
		f.guestRepo.EXPECT().
			GetByPhone(gomock.Any(), newPhone).
			Return(guestModel.Guest{}, errors.New("database error"))

		req := dto.UpdateBookingRequest{Phone: newPhone}

		assert.Error(t, f.svc.Update(context.Background(), req, "booking-1"))
	})
}

func TestBookingService_Delete(t *testing.T) {
	chatID := int64(555)

	t.Run("deleting the active stay clears the guest's room", func(t *testing.T) {
		f := newBookingServiceFixture(t)

		existing := stayOver(101, timezone.Now().AddDate(0, 0, -1), 4)
		existing.ID = "booking-1"
		existing.GuestChatID = &chatID

		f.repo.EXPECT().Get(gomock.Any(), "booking-1").Return(existing, nil)
		f.repo.EXPECT().Delete(gomock.Any(), "booking-1").Return(nil)
		f.guestRepo.EXPECT().SetCurrentRoom(gomock.Any(), chatID, nil).Return(nil)

		assert.NoError(t, f.svc.Delete(context.Background(), "booking-1"))
	})

	t.Run("deleting a future stay leaves the guest alone", func(t *testing.T) {
		f := newBookingServiceFixture(t)

		existing := stayOver(101, timezone.Now().AddDate(0, 0, 10), 4)
		existing.ID = "booking-1"
		existing.GuestChatID = &chatID

		f.repo.EXPECT().Get(gomock.Any(), "booking-1").Return(existing, nil)
		f.repo.EXPECT().Delete(gomock.Any(), "booking-1").Return(nil)

		assert.NoError(t, f.svc.Delete(context.Background(), "booking-1"))
	})

	t.Run("missing booking", func(t *testing.T) {
		f := newBookingServiceFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), "booking-1").Return(model.Booking{}, nil)

		err := f.svc.Delete(context.Background(), "booking-1")

		assert.Error(t, err)
		assert.True(t, failure.IsNotFound(err))
	})
}
