package model

import (
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/model"
)

const (
	TableName  = "reviews"
	EntityName = "review"

	FieldID      = "id"
	FieldChatID  = "chat_id"
	FieldRating  = "rating"
	FieldComment = "comment"
)

type Review struct {
	ID      string `db:"id"`
	ChatID  *int64 `db:"chat_id"`
	Rating  int    `db:"rating"`
	Comment string `db:"comment"`
	model.Metadata
}
