package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/infras/otel"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/infras/postgres"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/guest/model"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/constant"
	gDto "github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/dto"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/logger"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/timezone"
)

type Guest interface {
	Upsert(ctx context.Context, guest model.Guest) error
	Get(ctx context.Context, chatID int64) (model.Guest, error)
	GetByPhone(ctx context.Context, phone string) (model.Guest, error)
	GetAll(ctx context.Context, params gDto.QueryParams) ([]model.Guest, error)
	Count(ctx context.Context) (int, error)
	SetPhone(ctx context.Context, chatID int64, phone string) error
	SetCurrentRoom(ctx context.Context, chatID int64, room *int) error
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Guest {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

// Upsert inserts the guest or refreshes the name of an existing chat id. Phone
// and current room are never touched here so a re-sent /start cannot wipe an
// established identity.
func (repo *repositoryImpl) Upsert(ctx context.Context, guest model.Guest) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Upsert", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := `INSERT INTO guests (chat_id, name, phone, current_room, created_at, modified_at, created_by, modified_by)
		VALUES (:chat_id, :name, :phone, :current_room, :created_at, :modified_at, :created_by, :modified_by)
		ON CONFLICT (chat_id) DO UPDATE SET name = EXCLUDED.name, modified_at = EXCLUDED.modified_at, modified_by = EXCLUDED.modified_by`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.db.Write.NamedExecContext(ctx, query, guest); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to upsert data (%s): %w", model.EntityName, err)
	}

	return nil
}

func (repo *repositoryImpl) Get(ctx context.Context, chatID int64) (model.Guest, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Get", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := "SELECT * FROM guests WHERE chat_id = $1"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var guest model.Guest

	err := repo.db.Read.GetContext(ctx, &guest, query, chatID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Guest{}, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return guest, fmt.Errorf("failed to get data (%s): %w", model.EntityName, err)
	}

	return guest, nil
}

func (repo *repositoryImpl) GetByPhone(ctx context.Context, phone string) (model.Guest, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.GetByPhone", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := "SELECT * FROM guests WHERE phone = $1"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var guest model.Guest

	err := repo.db.Read.GetContext(ctx, &guest, query, phone)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Guest{}, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return guest, fmt.Errorf("failed to get data by phone (%s): %w", model.EntityName, err)
	}

	return guest, nil
}

func (repo *repositoryImpl) GetAll(ctx context.Context, params gDto.QueryParams) ([]model.Guest, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.GetAll", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	args := map[string]any{}
	pagination := ""

	if params.Page > 0 && params.Limit > 0 {
		args["limit"] = params.Limit
		args["offset"] = (params.Page - 1) * params.Limit

		pagination = "LIMIT :limit OFFSET :offset"
	}

	query := strings.TrimSpace(fmt.Sprintf("SELECT * FROM guests ORDER BY created_at DESC %s", pagination))
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var guests []model.Guest

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return guests, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &guests, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return guests, fmt.Errorf("failed to get all data (%s): %w", model.EntityName, err)
	}

	return guests, nil
}

func (repo *repositoryImpl) Count(ctx context.Context) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Count", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := "SELECT COUNT(chat_id) FROM guests"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var count int

	if err := repo.db.Read.GetContext(ctx, &count, query); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count data (%s): %w", model.EntityName, err)
	}

	return count, nil
}

func (repo *repositoryImpl) SetPhone(ctx context.Context, chatID int64, phone string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.SetPhone", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := "UPDATE guests SET phone = :phone, modified_at = :modified_at, modified_by = :modified_by WHERE chat_id = :chat_id"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"chat_id":     chatID,
		"phone":       phone,
		"modified_at": timezone.Now(),
		"modified_by": constant.ActorBot,
	}

	if _, err := repo.db.Write.NamedExecContext(ctx, query, args); err != nil {
		if !postgres.IsUniqueViolation(err) {
			logger.ErrorWithStack(err)
		}

		scope.TraceError(err)

		return fmt.Errorf("failed to set phone (%s): %w", model.EntityName, err)
	}

	return nil
}

func (repo *repositoryImpl) SetCurrentRoom(ctx context.Context, chatID int64, room *int) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.SetCurrentRoom", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := "UPDATE guests SET current_room = :current_room, modified_at = :modified_at, modified_by = :modified_by WHERE chat_id = :chat_id"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"chat_id":      chatID,
		"current_room": room,
		"modified_at":  timezone.Now(),
		"modified_by":  constant.ActorBot,
	}

	if _, err := repo.db.Write.NamedExecContext(ctx, query, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to set current room (%s): %w", model.EntityName, err)
	}

	return nil
}
