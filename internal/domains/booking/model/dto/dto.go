package dto

import (
	"time"

	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/booking/model"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/constant"
	gDto "github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/dto"
	gModel "github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/model"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	RoomNumber int     `json:"room_number" validate:"required,gt=0"`
	GuestName  string  `json:"guest_name"  validate:"required,max=200"`
	Phone      string  `json:"phone"       validate:"omitempty,phone_ru"`
	CheckIn    string  `json:"check_in"    validate:"required"`
	CheckOut   string  `json:"check_out"   validate:"required"`
	Rate       float64 `json:"rate"        validate:"required,gt=0"`
}

func (c *CreateBookingRequest) ToModel(user string) (model.Booking, error) {
	checkIn, err := time.Parse(constant.StayDateFormat, c.CheckIn)
	if err != nil {
		return model.Booking{}, err
	}

	checkOut, err := time.Parse(constant.StayDateFormat, c.CheckOut)
	if err != nil {
		return model.Booking{}, err
	}

	var phone *string
	if c.Phone != "" {
		phone = &c.Phone
	}

	return model.Booking{
		ID:         uuid.NewString(),
		RoomNumber: c.RoomNumber,
		GuestName:  c.GuestName,
		Phone:      phone,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Status:     constant.BookingStatusBooked,
		Rate:       c.Rate,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateBookingRequest struct {
	RoomNumber int     `json:"room_number" validate:"omitempty,gt=0"`
	GuestName  string  `json:"guest_name"  validate:"omitempty,max=200"`
	Phone      string  `json:"phone"       validate:"omitempty,phone_ru"`
	CheckIn    string  `json:"check_in"    validate:"omitempty"`
	CheckOut   string  `json:"check_out"   validate:"omitempty"`
	Status     string  `json:"status"      validate:"omitempty,oneof=booked cancelled"`
	Rate       float64 `json:"rate"        validate:"omitempty,gt=0"`
	Paid       *bool   `json:"paid"        validate:"omitempty"`
}

// ToFields builds the update column map by hand because the date columns need
// parsing before they can be bound.
func (u *UpdateBookingRequest) ToFields(user string) (map[string]any, error) {
	fields := map[string]any{}

	if u.RoomNumber != 0 {
		fields[model.FieldRoomNumber] = u.RoomNumber
	}

	if u.GuestName != "" {
		fields[model.FieldGuestName] = u.GuestName
	}

	if u.Phone != "" {
		fields[model.FieldPhone] = u.Phone
	}

	if u.CheckIn != "" {
		checkIn, err := time.Parse(constant.StayDateFormat, u.CheckIn)
		if err != nil {
			return nil, err
		}

		fields[model.FieldCheckIn] = checkIn
	}

	if u.CheckOut != "" {
		checkOut, err := time.Parse(constant.StayDateFormat, u.CheckOut)
		if err != nil {
			return nil, err
		}

		fields[model.FieldCheckOut] = checkOut
	}

	if u.Status != "" {
		fields[model.FieldStatus] = u.Status
	}

	if u.Rate != 0 {
		fields[model.FieldRate] = u.Rate
	}

	if u.Paid != nil {
		fields[model.FieldPaid] = *u.Paid
	}

	fields[constant.FieldModifiedAt] = timezone.Now()
	fields[constant.FieldModifiedBy] = user

	return fields, nil
}

type SetCleanedRequest struct {
	Cleaned bool `json:"cleaned"`
}

type ChargeExtrasRequest struct {
	RoomNumber int     `json:"room_number" validate:"required,gt=0"`
	Amount     float64 `json:"amount"      validate:"required,gt=0"`
	BookingID  string  `json:"booking_id"  validate:"omitempty,uuid4"`
}

type BookingFilter struct {
	RoomNumber int    `json:"room_number"`
	Status     string `json:"status"`
	Phone      string `json:"phone"`
}

type BookingResponse struct {
	ID          string  `json:"id"`
	RoomNumber  int     `json:"room_number"`
	GuestName   string  `json:"guest_name"`
	Phone       *string `json:"phone"`
	GuestChatID *int64  `json:"guest_chat_id"`
	CheckIn     string  `json:"check_in"`
	CheckOut    string  `json:"check_out"`
	Status      string  `json:"status"`
	Rate        float64 `json:"rate"`
	ExtrasTotal float64 `json:"extras_total"`
	Paid        bool    `json:"paid"`
	Cleaned     bool    `json:"cleaned"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.RoomNumber = model.RoomNumber
	r.GuestName = model.GuestName
	r.Phone = model.Phone
	r.GuestChatID = model.GuestChatID
	r.CheckIn = model.CheckIn.Format(constant.StayDateFormat)
	r.CheckOut = model.CheckOut.Format(constant.StayDateFormat)
	r.Status = model.Status
	r.Rate = model.Rate
	r.ExtrasTotal = model.ExtrasTotal
	r.Paid = model.Paid
	r.Cleaned = model.Cleaned
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
