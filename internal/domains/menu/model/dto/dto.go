package dto

import (
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/menu/model"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared"
	gModel "github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/model"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/timezone"

	"github.com/google/uuid"
)

type CreateMenuItemRequest struct {
	Name        string  `json:"name"        validate:"required,max=200"`
	Price       float64 `json:"price"       validate:"required,gt=0"`
	Description string  `json:"description" validate:"omitempty,max=2000"`
	Category    string  `json:"category"    validate:"omitempty,max=100"`
}

func (c *CreateMenuItemRequest) ToModel(user string) model.MenuItem {
	return model.MenuItem{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Price:       c.Price,
		Description: c.Description,
		Category:    c.Category,
		IsAvailable: true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateMenuItemRequest struct {
	Price       float64 `db:"price"        json:"price"        validate:"omitempty,gt=0"`
	Description string  `db:"description"  json:"description"  validate:"omitempty,max=2000"`
	Category    string  `db:"category"     json:"category"     validate:"omitempty,max=100"`
	IsAvailable *bool   `db:"is_available" json:"is_available" validate:"omitempty"`
}

type MenuItemResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	IsAvailable bool    `json:"is_available"`
}

func (r *MenuItemResponse) FromModel(model model.MenuItem) {
	r.ID = model.ID
	r.Name = model.Name
	r.Price = model.Price
	r.Description = model.Description
	r.Category = model.Category
	r.IsAvailable = model.IsAvailable
}

type GetMenuResponse struct {
	Items     []MenuItemResponse `json:"items"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetMenuResponse) FromModels(models []model.MenuItem, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Items = make([]MenuItemResponse, len(models))
	for i, mod := range models {
		r.Items[i].FromModel(mod)
	}
}
