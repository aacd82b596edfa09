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
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/staff/model"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/constant"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/logger"
)

type Staff interface {
	Insert(ctx context.Context, staff model.Staff) error
	Get(ctx context.Context, id string) (model.Staff, error)
	GetByEmail(ctx context.Context, email string) (model.Staff, error)
	ExistByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, fields map[string]any, id string) error
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Staff {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

func (repo *repositoryImpl) Insert(ctx context.Context, staff model.Staff) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Insert", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := `INSERT INTO staff (id, email, name, password, active, last_login, created_at, modified_at, created_by, modified_by)
		VALUES (:id, :email, :name, :password, :active, :last_login, :created_at, :modified_at, :created_by, :modified_by)`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.db.Write.NamedExecContext(ctx, query, staff); err != nil {
		if !postgres.IsUniqueViolation(err) {
			logger.ErrorWithStack(err)
		}

		scope.TraceError(err)

		return fmt.Errorf("failed to insert data (%s): %w", model.EntityName, err)
	}

	return nil
}

func (repo *repositoryImpl) Get(ctx context.Context, id string) (model.Staff, error) {
	return repo.get(ctx, "SELECT * FROM staff WHERE id = $1", id)
}

func (repo *repositoryImpl) GetByEmail(ctx context.Context, email string) (model.Staff, error) {
	return repo.get(ctx, "SELECT * FROM staff WHERE email = $1", email)
}

func (repo *repositoryImpl) get(ctx context.Context, query string, arg any) (model.Staff, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Get", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var staff model.Staff

	err := repo.db.Read.GetContext(ctx, &staff, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Staff{}, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return staff, fmt.Errorf("failed to get data (%s): %w", model.EntityName, err)
	}

	return staff, nil
}

func (repo *repositoryImpl) ExistByEmail(ctx context.Context, email string) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.ExistByEmail", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := "SELECT EXISTS(SELECT 1 FROM staff WHERE email = $1)"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	exist := false

	if err := repo.db.Read.GetContext(ctx, &exist, query, email); err != nil {
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

	query := fmt.Sprintf("UPDATE staff SET %s WHERE id = :id", strings.Join(updateField, ", "))
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.db.Write.NamedExecContext(ctx, query, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to update data (%s): %w", model.EntityName, err)
	}

	return nil
}
