package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/infras/otel"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/infras/postgres"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/booking/model"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/booking/model/dto"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/constant"
	gDto "github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/dto"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/logger"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/timezone"
)

type Booking interface {
	Insert(ctx context.Context, booking model.Booking) error
	Get(ctx context.Context, id string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter dto.BookingFilter) ([]model.Booking, error)
	Count(ctx context.Context, filter dto.BookingFilter) (int, error)
	Exist(ctx context.Context, id string) (bool, error)
	Update(ctx context.Context, fields map[string]any, id string) error
	Delete(ctx context.Context, id string) error
	GetByRoom(ctx context.Context, roomNumber int) ([]model.Booking, error)
	GetByChat(ctx context.Context, chatID int64) ([]model.Booking, error)
	LinkToGuest(ctx context.Context, phone string, chatID int64) (int64, error)
	AddExtras(ctx context.Context, id string, amount float64) error
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

func (repo *repositoryImpl) Insert(ctx context.Context, booking model.Booking) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Insert", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := `INSERT INTO bookings (id, room_number, guest_name, phone, guest_chat_id, check_in, check_out, status, rate, extras_total, paid, cleaned, created_at, modified_at, created_by, modified_by)
		VALUES (:id, :room_number, :guest_name, :phone, :guest_chat_id, :check_in, :check_out, :status, :rate, :extras_total, :paid, :cleaned, :created_at, :modified_at, :created_by, :modified_by)`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.db.Write.NamedExecContext(ctx, query, booking); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to insert data (%s): %w", model.EntityName, err)
	}

	return nil
}

func (repo *repositoryImpl) Get(ctx context.Context, id string) (model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Get", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := "SELECT * FROM bookings WHERE id = $1"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var booking model.Booking

	err := repo.db.Read.GetContext(ctx, &booking, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Booking{}, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return booking, fmt.Errorf("failed to get data (%s): %w", model.EntityName, err)
	}

	return booking, nil
}

func buildFilter(filter dto.BookingFilter, args map[string]any) string {
	conditions := []string{}

	if filter.RoomNumber > 0 {
		conditions = append(conditions, "room_number = :room_number")
		args["room_number"] = filter.RoomNumber
	}

	if filter.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = filter.Status
	}

	if filter.Phone != "" {
		conditions = append(conditions, "phone = :phone")
		args["phone"] = filter.Phone
	}

	if len(conditions) == 0 {
		return ""
	}

	return "WHERE " + strings.Join(conditions, " AND ")
}

func (repo *repositoryImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter dto.BookingFilter) ([]model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.GetAll", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	args := map[string]any{}
	where := buildFilter(filter, args)
	pagination := ""

	if params.Page > 0 && params.Limit > 0 {
		args["limit"] = params.Limit
		args["offset"] = (params.Page - 1) * params.Limit

		pagination = "LIMIT :limit OFFSET :offset"
	}

	query := strings.TrimSpace(fmt.Sprintf("SELECT * FROM bookings %s ORDER BY check_in DESC, room_number %s", where, pagination))
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var bookings []model.Booking

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return bookings, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &bookings, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return bookings, fmt.Errorf("failed to get all data (%s): %w", model.EntityName, err)
	}

	return bookings, nil
}

func (repo *repositoryImpl) Count(ctx context.Context, filter dto.BookingFilter) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Count", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	args := map[string]any{}
	where := buildFilter(filter, args)

	query := strings.TrimSpace(fmt.Sprintf("SELECT COUNT(id) FROM bookings %s", where))
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var count int

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	if err := prepare.GetContext(ctx, &count, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count data (%s): %w", model.EntityName, err)
	}

	return count, nil
}

func (repo *repositoryImpl) Exist(ctx context.Context, id string) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Exist", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := "SELECT EXISTS(SELECT 1 FROM bookings WHERE id = $1)"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	exist := false

	if err := repo.db.Read.GetContext(ctx, &exist, query, id); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check exist data (%s): %w", model.EntityName, err)
	}

	return exist, nil
}

func (repo *repositoryImpl) Update(ctx context.Context, fields map[string]any, id string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Update", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	updateField := []string{}

	for col := range maps.Keys(fields) {
		updateField = append(updateField, fmt.Sprintf("%s = :%s", col, col))
	}

	args := map[string]any{"id": id}
	maps.Copy(args, fields)

	query := fmt.Sprintf("UPDATE bookings SET %s WHERE id = :id", strings.Join(updateField, ", "))
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.db.Write.NamedExecContext(ctx, query, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to update data (%s): %w", model.EntityName, err)
	}

	return nil
}

func (repo *repositoryImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Delete", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := "DELETE FROM bookings WHERE id = :id"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.db.Write.NamedExecContext(ctx, query, map[string]any{"id": id}); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to delete data (%s): %w", model.EntityName, err)
	}

	return nil
}

// GetByRoom returns every booked stay for the room, newest check-in first.
func (repo *repositoryImpl) GetByRoom(ctx context.Context, roomNumber int) ([]model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.GetByRoom", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := "SELECT * FROM bookings WHERE room_number = $1 AND status = $2 ORDER BY check_in DESC"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var bookings []model.Booking

	err := repo.db.Read.SelectContext(ctx, &bookings, query, roomNumber, constant.BookingStatusBooked)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return bookings, fmt.Errorf("failed to get data by room (%s): %w", model.EntityName, err)
	}

	return bookings, nil
}

func (repo *repositoryImpl) GetByChat(ctx context.Context, chatID int64) ([]model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.GetByChat", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := "SELECT * FROM bookings WHERE guest_chat_id = $1 ORDER BY check_in DESC"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var bookings []model.Booking

	err := repo.db.Read.SelectContext(ctx, &bookings, query, chatID)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return bookings, fmt.Errorf("failed to get data by chat (%s): %w", model.EntityName, err)
	}

	return bookings, nil
}

// LinkToGuest attaches the chat id to every booking that carries the phone but
// has no chat yet. Already linked rows are left untouched, which keeps the
// operation safe to repeat.
func (repo *repositoryImpl) LinkToGuest(ctx context.Context, phone string, chatID int64) (int64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.LinkToGuest", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := `UPDATE bookings SET guest_chat_id = :chat_id, modified_at = :modified_at, modified_by = :modified_by
		WHERE phone = :phone AND guest_chat_id IS NULL`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"chat_id":     chatID,
		"phone":       phone,
		"modified_at": timezone.Now(),
		"modified_by": constant.ActorBot,
	}

	result, err := repo.db.Write.NamedExecContext(ctx, query, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to link bookings to guest (%s): %w", model.EntityName, err)
	}

	linked, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read linked rows (%s): %w", model.EntityName, err)
	}

	return linked, nil
}

// AddExtras increments the running extras total in a single statement so that
// concurrent charges never lose an update.
func (repo *repositoryImpl) AddExtras(ctx context.Context, id string, amount float64) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.AddExtras", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := `UPDATE bookings SET extras_total = extras_total + :amount, modified_at = :modified_at
		WHERE id = :id`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"id":          id,
		"amount":      amount,
		"modified_at": timezone.Now(),
	}

	if _, err := repo.db.Write.NamedExecContext(ctx, query, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to add extras (%s): %w", model.EntityName, err)
	}

	return nil
}
