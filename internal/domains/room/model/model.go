package model

import (
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID          = "id"
	FieldNumber      = "number"
	FieldCategory    = "category"
	FieldRate        = "rate"
	FieldDescription = "description"
	FieldPhotoURL    = "photo_url"
)

type Room struct {
	ID          string  `db:"id"`
	Number      int     `db:"number"`
	Category    string  `db:"category"`
	Rate        float64 `db:"rate"`
	Description string  `db:"description"`
	PhotoURL    string  `db:"photo_url"`
	model.Metadata
}
