package model

import (
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/model"
)

const (
	TableName  = "guests"
	EntityName = "guest"

	FieldChatID      = "chat_id"
	FieldName        = "name"
	FieldPhone       = "phone"
	FieldCurrentRoom = "current_room"
)

// Guest is a chat identity known to the bot. A guest becomes registered once
// a phone number is attached; until then only the chat id and name are held.
type Guest struct {
	ChatID      int64   `db:"chat_id"`
	Name        string  `db:"name"`
	Phone       *string `db:"phone"`
	CurrentRoom *int    `db:"current_room"`
	model.Metadata
}

func (g Guest) Registered() bool {
	return g.Phone != nil && *g.Phone != ""
}
