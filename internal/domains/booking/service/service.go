package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/config"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/infras/otel"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/booking/model"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/booking/model/dto"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/booking/repository"
	guestRepo "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/guest/repository"
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
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

// Notifier delivers a room change message to the guest's chat. The bot
// transport implements it.
type Notifier interface {
	NotifyRoomChange(ctx context.Context, chatID int64, oldRoom, newRoom int) error
}

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter dto.BookingFilter) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetByChat(ctx context.Context, chatID int64) (dto.GetBookingsResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error
	Delete(ctx context.Context, id string) error
	SetCleaned(ctx context.Context, id string, cleaned bool) error
	ActiveForRoom(ctx context.Context, roomNumber int, refDate time.Time) (dto.BookingResponse, error)
	ChargeExtras(ctx context.Context, req dto.ChargeExtrasRequest) (string, error)
}

type serviceImpl struct {
	repo      repository.Booking
	guestRepo guestRepo.Guest
	notifier  Notifier
	publisher events.Publisher
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(repo repository.Booking, guestRepo guestRepo.Guest, notifier Notifier, publisher events.Publisher, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:      repo,
		guestRepo: guestRepo,
		notifier:  notifier,
		publisher: publisher,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

// Create stores a new stay. When the phone already belongs to a registered
// chat the stay is linked to that chat right away, so a booking entered after
// the guest registered still reaches them.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyStaffEmail).(string)
	if user == constant.Empty {
		user = constant.ActorBot
	}

	booking, err := req.ToModel(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking dates")

		return failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	if !booking.CheckOut.After(booking.CheckIn) {
		return failure.BadRequestFromString("check_out must be after check_in") // nolint:wrapcheck
	}

	if booking.Phone != nil {
		guest, err := s.guestRepo.GetByPhone(ctx, *booking.Phone)
		if err != nil {
			log.Error().Err(err).Msg("failed to resolve guest by phone")

			return fmt.Errorf("failed to resolve guest by phone: %w", err)
		}

		if guest.ChatID != 0 {
			booking.GuestChatID = &guest.ChatID
		}
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return fmt.Errorf("failed to create booking: %w", err)
	}

	if booking.GuestChatID != nil && booking.ContainsDate(timezone.Now()) {
		if err := s.guestRepo.SetCurrentRoom(ctx, *booking.GuestChatID, &booking.RoomNumber); err != nil {
			log.Error().Err(err).Int64("chatID", *booking.GuestChatID).Msg("failed to sync guest current room")
		}
	}

	s.invalidateListCaches(ctx)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter dto.BookingFilter) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking") // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetByChat(ctx context.Context, chatID int64) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByChat")
	defer scope.End()
	defer scope.TraceIfError(err)

	models, err := s.repo.GetByChat(ctx, chatID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings by chat")

		return res, fmt.Errorf("failed to get bookings by chat: %w", err)
	}

	res.FromModels(models, len(models), 0)

	return res, nil
}

// Update applies partial changes. A room number change triggers the
// reassignment flow: the linked chat is told about the move, the guest's
// current room is re-synced and a reassignment event is published. Failures
// past the row update are logged and swallowed, the move itself stands.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()

	if req == (dto.UpdateBookingRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyStaffEmail).(string)

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if existing.ID == constant.Empty {
		return failure.NotFound("booking") // nolint:wrapcheck
	}

	fields, err := req.ToFields(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking dates")

		return failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	// A new phone re-binds the stay to whoever owns that phone now. The old
	// link must not survive the edit, so the column is written even when no
	// registered guest matches.
	if req.Phone != "" && (existing.Phone == nil || *existing.Phone != req.Phone) {
		guest, err := s.guestRepo.GetByPhone(ctx, req.Phone)
		if err != nil {
			log.Error().Err(err).Msg("failed to resolve guest by phone")

			return fmt.Errorf("failed to resolve guest by phone: %w", err)
		}

		existing.GuestChatID = nil
		if guest.ChatID != 0 {
			chatID := guest.ChatID
			existing.GuestChatID = &chatID
		}

		fields[model.FieldGuestChatID] = existing.GuestChatID
	}

	if err := s.repo.Update(ctx, fields, id); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	if req.RoomNumber != 0 && req.RoomNumber != existing.RoomNumber {
		s.handleRoomChange(ctx, existing, req.RoomNumber, user)
	}

	s.invalidateAllCaches(ctx, id)

	return nil
}

func (s *serviceImpl) handleRoomChange(ctx context.Context, existing model.Booking, newRoom int, user string) {
	if existing.GuestChatID != nil {
		chatID := *existing.GuestChatID

		if err := s.notifier.NotifyRoomChange(ctx, chatID, existing.RoomNumber, newRoom); err != nil {
			log.Error().Err(err).Int64("chatID", chatID).Msg("failed to notify guest about room change")
		}

		if existing.ContainsDate(timezone.Now()) {
			room := newRoom
			if err := s.guestRepo.SetCurrentRoom(ctx, chatID, &room); err != nil {
				log.Error().Err(err).Int64("chatID", chatID).Msg("failed to sync guest current room")
			}
		}
	}

	event := events.RoomReassignedEvent{
		BookingID: existing.ID,
		OldRoom:   existing.RoomNumber,
		NewRoom:   newRoom,
		ChangedBy: user,
	}
	if existing.GuestChatID != nil {
		event.ChatID = *existing.GuestChatID
	}

	s.publisher.RoomReassigned(ctx, event)
}

func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if existing.ID == constant.Empty {
		return failure.NotFound("booking") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	// Dropping the stay a guest is currently in leaves them without a room.
	if existing.GuestChatID != nil && existing.ContainsDate(timezone.Now()) {
		if err := s.guestRepo.SetCurrentRoom(ctx, *existing.GuestChatID, nil); err != nil {
			log.Error().Err(err).Int64("chatID", *existing.GuestChatID).Msg("failed to clear guest current room")
		}
	}

	s.invalidateAllCaches(ctx, id)

	return nil
}

func (s *serviceImpl) SetCleaned(ctx context.Context, id string, cleaned bool) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetCleaned")
	defer scope.End()

	user, _ := ctx.Value(constant.ContextKeyStaffEmail).(string)

	exist, err := s.repo.Exist(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		return failure.NotFound("booking") // nolint:wrapcheck
	}

	fields := map[string]any{
		model.FieldCleaned:       cleaned,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.Update(ctx, fields, id); err != nil {
		log.Error().Err(err).Msg("failed to update cleaned flag")

		return fmt.Errorf("failed to update cleaned flag: %w", err)
	}

	s.invalidateAllCaches(ctx, id)

	return nil
}

// ActiveForRoom resolves the stay occupying the room on the given date.
// When stays overlap the one with the latest check-in wins, it is the most
// recently started and therefore the one the desk means.
func (s *serviceImpl) ActiveForRoom(ctx context.Context, roomNumber int, refDate time.Time) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ActiveForRoom")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, found, err := s.activeBooking(ctx, roomNumber, refDate)
	if err != nil {
		return res, err
	}

	if !found {
		return res, failure.NotFound("active booking") // nolint:wrapcheck
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) activeBooking(ctx context.Context, roomNumber int, refDate time.Time) (model.Booking, bool, error) {
	bookings, err := s.repo.GetByRoom(ctx, roomNumber)
	if err != nil {
		log.Error().Err(err).Int("roomNumber", roomNumber).Msg("failed to get bookings for room")

		return model.Booking{}, false, fmt.Errorf("failed to get bookings for room: %w", err)
	}

	// Rows arrive newest check-in first, so the first covering stay wins.
	for _, booking := range bookings {
		if booking.ContainsDate(refDate) {
			return booking, true, nil
		}
	}

	return model.Booking{}, false, nil
}

// ChargeExtras adds the amount onto a stay's extras total. An explicit booking
// id pins the charge; otherwise the room's active stay today takes it. An empty
// returned id means no stay could absorb the charge and the caller should keep
// the amount unattributed.
func (s *serviceImpl) ChargeExtras(ctx context.Context, req dto.ChargeExtrasRequest) (bookingID string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChargeExtras")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.BookingID != constant.Empty {
		exist, err := s.repo.Exist(ctx, req.BookingID)
		if err != nil {
			log.Error().Err(err).Msg("failed to check if booking exists")

			return constant.Empty, fmt.Errorf("failed to check if booking exists: %w", err)
		}

		if !exist {
			return constant.Empty, failure.NotFound("booking") // nolint:wrapcheck
		}

		bookingID = req.BookingID
	} else {
		booking, found, err := s.activeBooking(ctx, req.RoomNumber, timezone.Now())
		if err != nil {
			return constant.Empty, err
		}

		if !found {
			log.Info().Int("roomNumber", req.RoomNumber).Msg("no active stay for room, charge stays unattributed")

			return constant.Empty, nil
		}

		bookingID = booking.ID
	}

	if err = s.repo.AddExtras(ctx, bookingID, req.Amount); err != nil {
		log.Error().Err(err).Str("bookingID", bookingID).Msg("failed to add extras")

		return constant.Empty, fmt.Errorf("failed to add extras: %w", err)
	}

	s.invalidateAllCaches(ctx, bookingID)

	return bookingID, nil
}

func (s *serviceImpl) invalidateListCaches(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}

func (s *serviceImpl) invalidateAllCaches(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}
