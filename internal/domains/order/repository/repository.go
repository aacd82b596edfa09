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
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/order/model"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/order/model/dto"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/constant"
	gDto "github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/dto"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/logger"
)

type Order interface {
	Insert(ctx context.Context, order model.Order) error
	Get(ctx context.Context, id string) (model.Order, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter dto.OrderFilter) ([]model.Order, error)
	Count(ctx context.Context, filter dto.OrderFilter) (int, error)
	Exist(ctx context.Context, id string) (bool, error)
	Update(ctx context.Context, fields map[string]any, id string) error
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Order {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

func (repo *repositoryImpl) Insert(ctx context.Context, order model.Order) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Insert", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := `INSERT INTO orders (id, chat_id, room_number, phone, booking_id, items, total, status, created_at, modified_at, created_by, modified_by)
		VALUES (:id, :chat_id, :room_number, :phone, :booking_id, :items, :total, :status, :created_at, :modified_at, :created_by, :modified_by)`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.db.Write.NamedExecContext(ctx, query, order); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to insert data (%s): %w", model.EntityName, err)
	}

	return nil
}

func (repo *repositoryImpl) Get(ctx context.Context, id string) (model.Order, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Get", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := "SELECT * FROM orders WHERE id = $1"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var order model.Order

	err := repo.db.Read.GetContext(ctx, &order, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Order{}, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return order, fmt.Errorf("failed to get data (%s): %w", model.EntityName, err)
	}

	return order, nil
}

func buildFilter(filter dto.OrderFilter, args map[string]any) string {
	conditions := []string{}

	if filter.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = filter.Status
	}

	if filter.RoomNumber > 0 {
		conditions = append(conditions, "room_number = :room_number")
		args["room_number"] = filter.RoomNumber
	}

	if filter.ChatID != 0 {
		conditions = append(conditions, "chat_id = :chat_id")
		args["chat_id"] = filter.ChatID
	}

	if len(conditions) == 0 {
		return ""
	}

	return "WHERE " + strings.Join(conditions, " AND ")
}

func (repo *repositoryImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter dto.OrderFilter) ([]model.Order, error) {
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

	query := strings.TrimSpace(fmt.Sprintf("SELECT * FROM orders %s ORDER BY created_at DESC %s", where, pagination))
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var orders []model.Order

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return orders, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &orders, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return orders, fmt.Errorf("failed to get all data (%s): %w", model.EntityName, err)
	}

	return orders, nil
}

func (repo *repositoryImpl) Count(ctx context.Context, filter dto.OrderFilter) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Count", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	args := map[string]any{}
	where := buildFilter(filter, args)

	query := strings.TrimSpace(fmt.Sprintf("SELECT COUNT(id) FROM orders %s", where))
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

	query := "SELECT EXISTS(SELECT 1 FROM orders WHERE id = $1)"
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

	query := fmt.Sprintf("UPDATE orders SET %s WHERE id = :id", strings.Join(updateField, ", "))
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.db.Write.NamedExecContext(ctx, query, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to update data (%s): %w", model.EntityName, err)
	}

	return nil
}
