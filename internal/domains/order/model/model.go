package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/model"
)

const (
	TableName  = "orders"
	EntityName = "order"

	FieldID         = "id"
	FieldChatID     = "chat_id"
	FieldRoomNumber = "room_number"
	FieldPhone      = "phone"
	FieldBookingID  = "booking_id"
	FieldItems      = "items"
	FieldTotal      = "total"
	FieldStatus     = "status"
)

type OrderItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"qty"`
	Price    float64 `json:"price"`
}

// OrderItems is stored as a jsonb column.
type OrderItems []OrderItem

func (o OrderItems) Value() (driver.Value, error) {
	return json.Marshal(o)
}

func (o *OrderItems) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, o)
	case string:
		return json.Unmarshal([]byte(v), o)
	default:
		return errors.New("unsupported source type for order items")
	}
}

func (o OrderItems) Total() float64 {
	total := 0.0
	for _, item := range o {
		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}

		total += item.Price * float64(qty)
	}

	return total
}

type Order struct {
	ID         string     `db:"id"`
	ChatID     *int64     `db:"chat_id"`
	RoomNumber *int       `db:"room_number"`
	Phone      *string    `db:"phone"`
	BookingID  *string    `db:"booking_id"`
	Items      OrderItems `db:"items"`
	Total      float64    `db:"total"`
	Status     string     `db:"status"`
	model.Metadata
}
