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
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/menu/model"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/constant"
	gDto "github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/dto"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/logger"
)

type Menu interface {
	Insert(ctx context.Context, item model.MenuItem) error
	Get(ctx context.Context, id string) (model.MenuItem, error)
	GetAll(ctx context.Context, params gDto.QueryParams, availableOnly bool) ([]model.MenuItem, error)
	Count(ctx context.Context, availableOnly bool) (int, error)
	Exist(ctx context.Context, id string) (bool, error)
	Update(ctx context.Context, fields map[string]any, id string) error
	Delete(ctx context.Context, id string) error
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Menu {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

func (repo *repositoryImpl) Insert(ctx context.Context, item model.MenuItem) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Insert", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := `INSERT INTO menu_items (id, name, price, description, category, is_available, created_at, modified_at, created_by, modified_by)
		VALUES (:id, :name, :price, :description, :category, :is_available, :created_at, :modified_at, :created_by, :modified_by)`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.db.Write.NamedExecContext(ctx, query, item); err != nil {
		if !postgres.IsUniqueViolation(err) {
			logger.ErrorWithStack(err)
		}

		scope.TraceError(err)

		return fmt.Errorf("failed to insert data (%s): %w", model.EntityName, err)
	}

	return nil
}

func (repo *repositoryImpl) Get(ctx context.Context, id string) (model.MenuItem, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Get", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := "SELECT * FROM menu_items WHERE id = $1"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var item model.MenuItem

	err := repo.db.Read.GetContext(ctx, &item, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.MenuItem{}, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return item, fmt.Errorf("failed to get data (%s): %w", model.EntityName, err)
	}

	return item, nil
}

func (repo *repositoryImpl) GetAll(ctx context.Context, params gDto.QueryParams, availableOnly bool) ([]model.MenuItem, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.GetAll", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	args := map[string]any{}
	where := ""
	pagination := ""

	if availableOnly {
		where = "WHERE is_available"
	}

	if params.Page > 0 && params.Limit > 0 {
		args["limit"] = params.Limit
		args["offset"] = (params.Page - 1) * params.Limit

		pagination = "LIMIT :limit OFFSET :offset"
	}

	query := strings.TrimSpace(fmt.Sprintf("SELECT * FROM menu_items %s ORDER BY category, name %s", where, pagination))
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var items []model.MenuItem

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return items, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &items, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return items, fmt.Errorf("failed to get all data (%s): %w", model.EntityName, err)
	}

	return items, nil
}

func (repo *repositoryImpl) Count(ctx context.Context, availableOnly bool) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Count", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	where := ""
	if availableOnly {
		where = "WHERE is_available"
	}

	query := strings.TrimSpace(fmt.Sprintf("SELECT COUNT(id) FROM menu_items %s", where))
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var count int

	if err := repo.db.Read.GetContext(ctx, &count, query); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count data (%s): %w", model.EntityName, err)
	}

	return count, nil
}

func (repo *repositoryImpl) Exist(ctx context.Context, id string) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Exist", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := "SELECT EXISTS(SELECT 1 FROM menu_items WHERE id = $1)"
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

	query := fmt.Sprintf("UPDATE menu_items SET %s WHERE id = :id", strings.Join(updateField, ", "))
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

	query := "DELETE FROM menu_items WHERE id = :id"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.db.Write.NamedExecContext(ctx, query, map[string]any{"id": id}); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to delete data (%s): %w", model.EntityName, err)
	}

	return nil
}
