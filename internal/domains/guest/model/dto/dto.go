package dto

import (
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/guest/model"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared"
)

type GuestResponse struct {
	ChatID      int64   `json:"chat_id"`
	Name        string  `json:"name"`
	Phone       *string `json:"phone"`
	CurrentRoom *int    `json:"current_room"`
	Registered  bool    `json:"registered"`
}

func (r *GuestResponse) FromModel(model model.Guest) {
	r.ChatID = model.ChatID
	r.Name = model.Name
	r.Phone = model.Phone
	r.CurrentRoom = model.CurrentRoom
	r.Registered = model.Registered()
}

type GetGuestsResponse struct {
	Guests    []GuestResponse `json:"guests"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetGuestsResponse) FromModels(models []model.Guest, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Guests = make([]GuestResponse, len(models))
	for i, mod := range models {
		r.Guests[i].FromModel(mod)
	}
}

// RegistrationSession is the bot-side registration state cached per chat while
// the guest walks through name and phone entry.
type RegistrationSession struct {
	ChatID     int64  `json:"chat_id"`
	Stage      string `json:"stage"`
	Name       string `json:"name"`
	TargetRoom int    `json:"target_room"`
}

const (
	StageAwaitName  = "await_name"
	StageAwaitPhone = "await_phone"
)

type SubmitPhoneResult struct {
	Guest         GuestResponse `json:"guest"`
	LinkedStays   int64         `json:"linked_stays"`
	ActiveRoom    int           `json:"active_room"`
	HasActiveStay bool          `json:"has_active_stay"`
}
