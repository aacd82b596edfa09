package model

import (
	"time"

	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/model"
)

const (
	TableName  = "staff"
	EntityName = "staff"

	FieldID        = "id"
	FieldEmail     = "email"
	FieldName      = "name"
	FieldPassword  = "password"
	FieldActive    = "active"
	FieldLastLogin = "last_login"
)

type Staff struct {
	ID        string     `db:"id"`
	Email     string     `db:"email"`
	Name      string     `db:"name"`
	Password  string     `db:"password"`
	Active    bool       `db:"active"`
	LastLogin *time.Time `db:"last_login"`
	model.Metadata
}
