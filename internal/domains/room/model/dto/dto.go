package dto

import (
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/room/model"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared"
	gDto "github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/dto"
	gModel "github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/model"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	Number      int     `json:"number"      validate:"required,gt=0"`
	Category    string  `json:"category"    validate:"required,max=100"`
	Rate        float64 `json:"rate"        validate:"required,gt=0"`
	Description string  `json:"description" validate:"omitempty"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	return model.Room{
		ID:          uuid.NewString(),
		Number:      c.Number,
		Category:    c.Category,
		Rate:        c.Rate,
		Description: c.Description,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	Category    string  `db:"category"    json:"category"    validate:"omitempty,max=100"`
	Rate        float64 `db:"rate"        json:"rate"        validate:"omitempty,gt=0"`
	Description string  `db:"description" json:"description" validate:"omitempty"`
}

type UploadRoomPhotoRequest struct {
	// Photo is a base64 data URL, the same format the admin panel webview posts.
	Photo string `json:"photo" validate:"required,mimetypes=image/jpeg image/png image/webp,maxfilesize=10"`
}

type RoomResponse struct {
	ID          string  `json:"id"`
	Number      int     `json:"number"`
	Category    string  `json:"category"`
	Rate        float64 `json:"rate"`
	Description string  `json:"description"`
	PhotoURL    string  `json:"photo_url"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Number = model.Number
	r.Category = model.Category
	r.Rate = model.Rate
	r.Description = model.Description
	r.PhotoURL = model.PhotoURL
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
