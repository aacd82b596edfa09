package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/config"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/infras/otel"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/infras/postgres"
	bookingRepo "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/booking/repository"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/guest/model"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/guest/model/dto"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/guest/repository"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/cache"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/constant"
	gDto "github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/dto"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/failure"
	gModel "github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/model"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/timezone"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/validator"

	"github.com/rs/zerolog/log"
)

const cacheSessionPrefix = "guest:session"

type Guest interface {
	Touch(ctx context.Context, chatID int64, name string) error
	Get(ctx context.Context, chatID int64) (dto.GuestResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams) (dto.GetGuestsResponse, error)
	ResolveByPhone(ctx context.Context, phone string) (dto.GuestResponse, error)
	StartRegistration(ctx context.Context, chatID int64, targetRoom int) (dto.RegistrationSession, error)
	Session(ctx context.Context, chatID int64) (dto.RegistrationSession, bool)
	SubmitName(ctx context.Context, chatID int64, name string) (dto.RegistrationSession, error)
	SubmitPhone(ctx context.Context, chatID int64, phone string) (dto.SubmitPhoneResult, error)
	CancelRegistration(ctx context.Context, chatID int64) error
}

type serviceImpl struct {
	repo        repository.Guest
	bookingRepo bookingRepo.Booking
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(repo repository.Guest, bookingRepo bookingRepo.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Guest {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

// Touch makes sure the chat id is on record, refreshing the display name
// without disturbing an existing registration.
func (s *serviceImpl) Touch(ctx context.Context, chatID int64, name string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Touch")
	defer scope.End()
	defer scope.TraceIfError(err)

	guest := model.Guest{
		ChatID: chatID,
		Name:   name,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  constant.ActorBot,
			ModifiedBy: constant.ActorBot,
		},
	}

	if err = s.repo.Upsert(ctx, guest); err != nil {
		log.Error().Err(err).Int64("chatID", chatID).Msg("failed to upsert guest")

		return fmt.Errorf("failed to upsert guest: %w", err)
	}

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, chatID int64) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	guest, err := s.repo.Get(ctx, chatID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get guest")

		return res, fmt.Errorf("failed to get guest: %w", err)
	}

	if guest.ChatID == 0 {
		return res, failure.NotFound("guest") // nolint:wrapcheck
	}

	res.FromModel(guest)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams) (res dto.GetGuestsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to count guests")

		return res, fmt.Errorf("failed to count guests: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req)
	if err != nil {
		log.Error().Err(err).Msg("failed to get guests")

		return res, fmt.Errorf("failed to get guests: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) ResolveByPhone(ctx context.Context, phone string) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ResolveByPhone")
	defer scope.End()
	defer scope.TraceIfError(err)

	guest, err := s.repo.GetByPhone(ctx, phone)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve guest by phone")

		return res, fmt.Errorf("failed to resolve guest by phone: %w", err)
	}

	if guest.ChatID == 0 {
		return res, failure.NotFound("guest") // nolint:wrapcheck
	}

	res.FromModel(guest)

	return res, nil
}

// StartRegistration opens a registration session for the chat. A repeated
// start simply restarts the flow from the name step.
func (s *serviceImpl) StartRegistration(ctx context.Context, chatID int64, targetRoom int) (dto.RegistrationSession, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".StartRegistration")
	defer scope.End()

	session := dto.RegistrationSession{
		ChatID:     chatID,
		Stage:      dto.StageAwaitName,
		TargetRoom: targetRoom,
	}

	if err := s.saveSession(ctx, session); err != nil {
		return dto.RegistrationSession{}, err
	}

	return session, nil
}

func (s *serviceImpl) Session(ctx context.Context, chatID int64) (dto.RegistrationSession, bool) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Session")
	defer scope.End()

	var session dto.RegistrationSession

	if err := s.cache.Get(ctx, s.sessionKey(chatID), &session); err != nil {
		return dto.RegistrationSession{}, false
	}

	return session, session.Stage != constant.Empty
}

func (s *serviceImpl) SubmitName(ctx context.Context, chatID int64, name string) (dto.RegistrationSession, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SubmitName")
	defer scope.End()

	session, ok := s.Session(ctx, chatID)
	if !ok || session.Stage != dto.StageAwaitName {
		return dto.RegistrationSession{}, failure.BadRequestFromString("no registration awaiting a name") // nolint:wrapcheck
	}

	if name == constant.Empty {
		return session, failure.BadRequestFromString("name cannot be empty") // nolint:wrapcheck
	}

	session.Name = name
	session.Stage = dto.StageAwaitPhone

	if err := s.saveSession(ctx, session); err != nil {
		return dto.RegistrationSession{}, err
	}

	return session, nil
}

// SubmitPhone finishes registration. The phone is the linking key: it must not
// belong to another chat, and once stored every unlinked stay carrying it is
// attached to this chat. Running it again with the same phone is harmless.
func (s *serviceImpl) SubmitPhone(ctx context.Context, chatID int64, phone string) (res dto.SubmitPhoneResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SubmitPhone")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = validator.ValidateVar(phone, "required,phone_ru"); err != nil {
		return res, failure.BadRequestFromString("phone must look like +7XXXXXXXXXX") // nolint:wrapcheck
	}

	owner, err := s.repo.GetByPhone(ctx, phone)
	if err != nil {
		log.Error().Err(err).Msg("failed to check phone owner")

		return res, fmt.Errorf("failed to check phone owner: %w", err)
	}

	if owner.ChatID != 0 && owner.ChatID != chatID {
		return res, failure.Conflict("phone already belongs to another guest") // nolint:wrapcheck
	}

	session, hasSession := s.Session(ctx, chatID)
	if hasSession && session.Name != constant.Empty {
		if err = s.Touch(ctx, chatID, session.Name); err != nil {
			return res, err
		}
	}

	if err = s.repo.SetPhone(ctx, chatID, phone); err != nil {
		if postgres.IsUniqueViolation(err) {
			return res, failure.Conflict("phone already belongs to another guest") // nolint:wrapcheck
		}

		log.Error().Err(err).Int64("chatID", chatID).Msg("failed to set guest phone")

		return res, fmt.Errorf("failed to set guest phone: %w", err)
	}

	linked, err := s.bookingRepo.LinkToGuest(ctx, phone, chatID)
	if err != nil {
		log.Error().Err(err).Msg("failed to link stays to guest")

		return res, fmt.Errorf("failed to link stays to guest: %w", err)
	}

	res.LinkedStays = linked

	// An active linked stay beats whatever room the deep link claimed.
	room, hasRoom := s.resolveContextRoom(ctx, chatID, session, hasSession)
	if hasRoom {
		if err := s.repo.SetCurrentRoom(ctx, chatID, &room); err != nil {
			log.Error().Err(err).Int64("chatID", chatID).Msg("failed to set guest current room")
		} else {
			res.ActiveRoom = room
			res.HasActiveStay = true
		}
	}

	guest, err := s.repo.Get(ctx, chatID)
	if err != nil {
		log.Error().Err(err).Msg("failed to reload guest")

		return res, fmt.Errorf("failed to reload guest: %w", err)
	}

	res.Guest.FromModel(guest)

	if hasSession {
		if err := s.cache.Delete(ctx, s.sessionKey(chatID)); err != nil {
			log.Error().Err(err).Int64("chatID", chatID).Msg("failed to drop registration session")
		}
	}

	return res, nil
}

func (s *serviceImpl) resolveContextRoom(ctx context.Context, chatID int64, session dto.RegistrationSession, hasSession bool) (int, bool) {
	stays, err := s.bookingRepo.GetByChat(ctx, chatID)
	if err != nil {
		log.Error().Err(err).Int64("chatID", chatID).Msg("failed to load linked stays")
	}

	now := timezone.Now()
	for _, stay := range stays {
		if stay.Status == constant.BookingStatusBooked && stay.ContainsDate(now) {
			return stay.RoomNumber, true
		}
	}

	if hasSession && session.TargetRoom > 0 {
		return session.TargetRoom, true
	}

	return 0, false
}

func (s *serviceImpl) CancelRegistration(ctx context.Context, chatID int64) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CancelRegistration")
	defer scope.End()

	if err := s.cache.Delete(ctx, s.sessionKey(chatID)); err != nil {
		log.Error().Err(err).Int64("chatID", chatID).Msg("failed to drop registration session")

		return fmt.Errorf("failed to drop registration session: %w", err)
	}

	return nil
}

func (s *serviceImpl) sessionKey(chatID int64) string {
	return shared.BuildCacheKey(cacheSessionPrefix, strconv.FormatInt(chatID, 10))
}

func (s *serviceImpl) saveSession(ctx context.Context, session dto.RegistrationSession) error {
	ttl := s.cfg.Telegram.SessionTTLHours * 3600

	if err := s.cache.Save(ctx, s.sessionKey(session.ChatID), session, ttl); err != nil {
		log.Error().Err(err).Int64("chatID", session.ChatID).Msg("failed to save registration session")

		return fmt.Errorf("failed to save registration session: %w", err)
	}

	return nil
}
