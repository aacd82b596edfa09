package model

import (
	"time"

	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/model"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/timezone"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID          = "id"
	FieldRoomNumber  = "room_number"
	FieldGuestName   = "guest_name"
	FieldPhone       = "phone"
	FieldGuestChatID = "guest_chat_id"
	FieldCheckIn     = "check_in"
	FieldCheckOut    = "check_out"
	FieldStatus      = "status"
	FieldRate        = "rate"
	FieldExtrasTotal = "extras_total"
	FieldPaid        = "paid"
	FieldCleaned     = "cleaned"
)

type Booking struct {
	ID          string    `db:"id"`
	RoomNumber  int       `db:"room_number"`
	GuestName   string    `db:"guest_name"`
	Phone       *string   `db:"phone"`
	GuestChatID *int64    `db:"guest_chat_id"`
	CheckIn     time.Time `db:"check_in"`
	CheckOut    time.Time `db:"check_out"`
	Status      string    `db:"status"`
	Rate        float64   `db:"rate"`
	ExtrasTotal float64   `db:"extras_total"`
	Paid        bool      `db:"paid"`
	Cleaned     bool      `db:"cleaned"`
	model.Metadata
}

// ContainsDate reports whether the stay covers the given date. Check-in day is
// inclusive, check-out day is exclusive.
func (b Booking) ContainsDate(date time.Time) bool {
	day := dateOnly(timezone.ToAppTime(date))
	checkIn := dateOnly(b.CheckIn)
	checkOut := dateOnly(b.CheckOut)

	return !day.Before(checkIn) && day.Before(checkOut)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
