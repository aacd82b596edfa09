package telegram

import (
	"encoding/json"
	"fmt"

	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/validator"
)

const (
	payloadTypeOrder         = "order"
	payloadTypeFeedback      = "feedback"
	payloadTypeBookingCreate = "booking_create"
	payloadTypeBookingCancel = "booking_cancel"
)

type orderItemPayload struct {
	Name     string  `json:"name"  validate:"required,max=200"`
	Quantity int     `json:"qty"   validate:"omitempty,gt=0"`
	Price    float64 `json:"price" validate:"required,gt=0"`
}

type orderPayload struct {
	Items      []orderItemPayload `json:"items"       validate:"required,min=1,dive"`
	TotalPrice float64            `json:"total_price" validate:"omitempty,gte=0"`
}

type feedbackPayload struct {
	Rating  int    `json:"rating"  validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=2000"`
}

type bookingCreatePayload struct {
	RoomNumber int     `json:"room_number" validate:"required,gt=0"`
	GuestName  string  `json:"guest_name"  validate:"required,max=200"`
	Phone      string  `json:"phone"       validate:"omitempty,phone_ru"`
	CheckIn    string  `json:"check_in"    validate:"required"`
	CheckOut   string  `json:"check_out"   validate:"required"`
	Rate       float64 `json:"rate"        validate:"required,gt=0"`
}

type bookingCancelPayload struct {
	BookingID string `json:"booking_id" validate:"required,uuid4"`
}

// decodePayload parses a web-app message into exactly one of the known
// payload kinds. Anything with an unknown type tag is rejected here so
// downstream handlers only ever see validated payloads.
func decodePayload(raw string) (any, error) {
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse web app payload: %w", err)
	}

	switch envelope.Type {
	case payloadTypeOrder:
		var payload orderPayload
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return nil, fmt.Errorf("failed to parse order payload: %w", err)
		}
		if err := validator.ValidateStruct(&payload); err != nil {
			return nil, err
		}
		return payload, nil
	case payloadTypeFeedback:
		var payload feedbackPayload
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return nil, fmt.Errorf("failed to parse feedback payload: %w", err)
		}
		if err := validator.ValidateStruct(&payload); err != nil {
			return nil, err
		}
		return payload, nil
	case payloadTypeBookingCreate:
		var payload bookingCreatePayload
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return nil, fmt.Errorf("failed to parse booking create payload: %w", err)
		}
		if err := validator.ValidateStruct(&payload); err != nil {
			return nil, err
		}
		return payload, nil
	case payloadTypeBookingCancel:
		var payload bookingCancelPayload
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return nil, fmt.Errorf("failed to parse booking cancel payload: %w", err)
		}
		if err := validator.ValidateStruct(&payload); err != nil {
			return nil, err
		}
		return payload, nil
	default:
		return nil, fmt.Errorf("unknown web app payload type %q", envelope.Type)
	}
}
