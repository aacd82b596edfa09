package model

import (
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/model"
)

const (
	TableName  = "menu_items"
	EntityName = "menu_item"

	FieldID          = "id"
	FieldName        = "name"
	FieldPrice       = "price"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldIsAvailable = "is_available"
)

type MenuItem struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Price       float64 `db:"price"`
	Description string  `db:"description"`
	Category    string  `db:"category"`
	IsAvailable bool    `db:"is_available"`
	model.Metadata
}
