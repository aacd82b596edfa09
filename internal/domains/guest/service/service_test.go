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
	bookingMocks "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/booking/mocks"
	bookingModel "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/booking/model"
	guestMocks "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/guest/mocks"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/guest/model"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/guest/model/dto"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/guest/service"
	cacheMocks "github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/cache/mocks"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/failure"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/timezone"
)

type guestServiceFixture struct {
	repo        *guestMocks.MockGuest
	bookingRepo *bookingMocks.MockBooking
	cache       *cacheMocks.MockRedisCache
	svc         service.Guest
}

func newGuestServiceFixture(t *testing.T) *guestServiceFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &guestServiceFixture{
		repo:        guestMocks.NewMockGuest(ctrl),
		bookingRepo: bookingMocks.NewMockBooking(ctrl),
		cache:       cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Telegram.SessionTTLHours = 24

	f.svc = service.New(f.repo, f.bookingRepo, cfg, f.cache, mocks.NewOtel())

	return f
}

// expectSession makes cache reads return the given registration session.
func (f *guestServiceFixture) expectSession(session dto.RegistrationSession) {
	f.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value any) error {
			*value.(*dto.RegistrationSession) = session

			return nil
		}).
		AnyTimes()
}

func (f *guestServiceFixture) expectNoSession() {
	f.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss")).
		AnyTimes()
}

func TestGuestService_Registration_Stages(t *testing.T) {
	chatID := int64(555)

	t.Run("start opens a session at the name step", func(t *testing.T) {
		f := newGuestServiceFixture(t)

		f.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), 24*3600).
			DoAndReturn(func(_ context.Context, _ string, value any, _ int) error {
				session := value.(dto.RegistrationSession)
				assert.Equal(t, dto.StageAwaitName, session.Stage)
				assert.Equal(t, 101, session.TargetRoom)

				return nil
			})

		session, err := f.svc.StartRegistration(context.Background(), chatID, 101)

		assert.NoError(t, err)
		assert.Equal(t, dto.StageAwaitName, session.Stage)
	})

	t.Run("name moves the session to the phone step", func(t *testing.T) {
		f := newGuestServiceFixture(t)

		f.expectSession(dto.RegistrationSession{ChatID: chatID, Stage: dto.StageAwaitName, TargetRoom: 101})
		f.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any, _ int) error {
				session := value.(dto.RegistrationSession)
				assert.Equal(t, dto.StageAwaitPhone, session.Stage)
				assert.Equal(t, "Мария", session.Name)

				return nil
			})

		session, err := f.svc.SubmitName(context.Background(), chatID, "Мария")

		assert.NoError(t, err)
		assert.Equal(t, dto.StageAwaitPhone, session.Stage)
	})

	t.Run("name without a session is rejected", func(t *testing.T) {
		f := newGuestServiceFixture(t)

		f.expectNoSession()

		_, err := f.svc.SubmitName(context.Background(), chatID, "Мария")

		assert.Error(t, err)
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		f := newGuestServiceFixture(t)

		f.expectSession(dto.RegistrationSession{ChatID: chatID, Stage: dto.StageAwaitName})

		_, err := f.svc.SubmitName(context.Background(), chatID, "")

		assert.Error(t, err)
	})

	t.Run("cancel drops the session", func(t *testing.T) {
		f := newGuestServiceFixture(t)

		f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, f.svc.CancelRegistration(context.Background(), chatID))
	})
}

func TestGuestService_SubmitPhone(t *testing.T) {
	chatID := int64(555)
	phone := "+79991234567"

	session := dto.RegistrationSession{
		ChatID:     chatID,
		Stage:      dto.StageAwaitPhone,
		Name:       "Мария",
		TargetRoom: 101,
	}

	t.Run("malformed phone is rejected before any write", func(t *testing.T) {
		f := newGuestServiceFixture(t)

		_, err := f.svc.SubmitPhone(context.Background(), chatID, "89991234567")

		assert.Error(t, err)
	})

	t.Run("phone owned by another chat conflicts and mutates nothing", func(t *testing.T) {
		f := newGuestServiceFixture(t)

		f.repo.EXPECT().
			GetByPhone(gomock.Any(), phone).
			Return(model.Guest{ChatID: 999, Phone: &phone}, nil)

		_, err := f.svc.SubmitPhone(context.Background(), chatID, phone)

		assert.Error(t, err)
		assert.True(t, failure.IsConflict(err))
	})

	t.Run("race on the unique phone column also conflicts", func(t *testing.T) {
		f := newGuestServiceFixture(t)

		f.expectSession(session)
		f.repo.EXPECT().GetByPhone(gomock.Any(), phone).Return(model.Guest{}, nil)
		f.repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().
			SetPhone(gomock.Any(), chatID, phone).
			Return(&pq.Error{Code: "23505"})

		_, err := f.svc.SubmitPhone(context.Background(), chatID, phone)

		assert.Error(t, err)
		assert.True(t, failure.IsConflict(err))
	})

	t.Run("successful registration links stays and resolves the room", func(t *testing.T) {
		f := newGuestServiceFixture(t)

		activeStay := bookingModel.Booking{
			ID:         "booking-1",
			RoomNumber: 205,
			Status:     "booked",
			CheckIn:    timezone.Now().AddDate(0, 0, -1),
			CheckOut:   timezone.Now().AddDate(0, 0, 3),
		}

		room := 205

		f.expectSession(session)
		f.repo.EXPECT().GetByPhone(gomock.Any(), phone).Return(model.Guest{}, nil)
		f.repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().SetPhone(gomock.Any(), chatID, phone).Return(nil)
		f.bookingRepo.EXPECT().LinkToGuest(gomock.Any(), phone, chatID).Return(int64(2), nil)
		f.bookingRepo.EXPECT().GetByChat(gomock.Any(), chatID).Return([]bookingModel.Booking{activeStay}, nil)
		f.repo.EXPECT().SetCurrentRoom(gomock.Any(), chatID, gomock.Any()).Return(nil)
		f.repo.EXPECT().
			Get(gomock.Any(), chatID).
			Return(model.Guest{ChatID: chatID, Name: "Мария", Phone: &phone, CurrentRoom: &room}, nil)
		f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.SubmitPhone(context.Background(), chatID, phone)

		assert.NoError(t, err)
		assert.Equal(t, int64(2), res.LinkedStays)
		assert.True(t, res.HasActiveStay)
		assert.Equal(t, 205, res.ActiveRoom)
		assert.True(t, res.Guest.Registered)
	})

	t.Run("no linked active stay falls back to the deep link room", func(t *testing.T) {
		f := newGuestServiceFixture(t)

		f.expectSession(session)
		f.repo.EXPECT().GetByPhone(gomock.Any(), phone).Return(model.Guest{}, nil)
		f.repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().SetPhone(gomock.Any(), chatID, phone).Return(nil)
		f.bookingRepo.EXPECT().LinkToGuest(gomock.Any(), phone, chatID).Return(int64(0), nil)
		f.bookingRepo.EXPECT().GetByChat(gomock.Any(), chatID).Return([]bookingModel.Booking{}, nil)
		f.repo.EXPECT().
			SetCurrentRoom(gomock.Any(), chatID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, room *int) error {
				assert.NotNil(t, room)
				assert.Equal(t, 101, *room)

				return nil
			})
		f.repo.EXPECT().
			Get(gomock.Any(), chatID).
			Return(model.Guest{ChatID: chatID, Name: "Мария", Phone: &phone}, nil)
		f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.SubmitPhone(context.Background(), chatID, phone)

		assert.NoError(t, err)
		assert.Equal(t, int64(0), res.LinkedStays)
		assert.Equal(t, 101, res.ActiveRoom)
	})

	t.Run("re-submitting the guest's own phone is idempotent", func(t *testing.T) {
		f := newGuestServiceFixture(t)

		f.expectNoSession()
		f.repo.EXPECT().
			GetByPhone(gomock.Any(), phone).
			Return(model.Guest{ChatID: chatID, Phone: &phone}, nil)
		f.repo.EXPECT().SetPhone(gomock.Any(), chatID, phone).Return(nil)
		f.bookingRepo.EXPECT().LinkToGuest(gomock.Any(), phone, chatID).Return(int64(0), nil)
		f.bookingRepo.EXPECT().GetByChat(gomock.Any(), chatID).Return([]bookingModel.Booking{}, nil)
		f.repo.EXPECT().
			Get(gomock.Any(), chatID).
			Return(model.Guest{ChatID: chatID, Phone: &phone}, nil)

		res, err := f.svc.SubmitPhone(context.Background(), chatID, phone)

		assert.NoError(t, err)
		assert.False(t, res.HasActiveStay)
	})
}

func TestGuestService_Get(t *testing.T) {
	t.Run("unknown chat id", func(t *testing.T) {
		f := newGuestServiceFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), int64(555)).Return(model.Guest{}, nil)

		_, err := f.svc.Get(context.Background(), 555)

		assert.Error(t, err)
		assert.True(t, failure.IsNotFound(err))
	})

	t.Run("registered flag reflects the phone", func(t *testing.T) {
		f := newGuestServiceFixture(t)

		phone := "+79991234567"
		f.repo.EXPECT().
			Get(gomock.Any(), int64(555)).
			Return(model.Guest{ChatID: 555, Name: "Мария", Phone: &phone}, nil)

		res, err := f.svc.Get(context.Background(), 555)

		assert.NoError(t, err)
		assert.True(t, res.Registered)
	})
}
