package dto

import (
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/order/model"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/constant"
	gDto "github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/dto"
	gModel "github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/model"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/timezone"

	"github.com/google/uuid"
)

type OrderItemRequest struct {
	Name     string  `json:"name"  validate:"required,max=200"`
	Quantity int     `json:"qty"   validate:"omitempty,gt=0"`
	Price    float64 `json:"price" validate:"required,gt=0"`
}

type PlaceOrderRequest struct {
	ChatID int64              `json:"chat_id" validate:"required"`
	Items  []OrderItemRequest `json:"items"   validate:"required,min=1,dive"`
}

func (p *PlaceOrderRequest) ToModel(user string) model.Order {
	items := make(model.OrderItems, len(p.Items))
	for i, item := range p.Items {
		qty := item.Quantity
		if qty == 0 {
			qty = 1
		}

		items[i] = model.OrderItem{
			Name:     item.Name,
			Quantity: qty,
			Price:    item.Price,
		}
	}

	chatID := p.ChatID

	return model.Order{
		ID:     uuid.NewString(),
		ChatID: &chatID,
		Items:  items,
		Total:  items.Total(),
		Status: constant.OrderStatusNew,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new in_work done cancelled"`
}

type OrderFilter struct {
	Status     string `json:"status"`
	RoomNumber int    `json:"room_number"`
	ChatID     int64  `json:"chat_id"`
}

type OrderItemResponse struct {
	Name     string  `json:"name"`
	Quantity int     `json:"qty"`
	Price    float64 `json:"price"`
}

type OrderResponse struct {
	ID         string              `json:"id"`
	ChatID     *int64              `json:"chat_id"`
	RoomNumber *int                `json:"room_number"`
	Phone      *string             `json:"phone"`
	BookingID  *string             `json:"booking_id"`
	Items      []OrderItemResponse `json:"items"`
	Total      float64             `json:"total"`
	Status     string              `json:"status"`
	gDto.Metadata
}

func (r *OrderResponse) FromModel(model model.Order) {
	r.ID = model.ID
	r.ChatID = model.ChatID
	r.RoomNumber = model.RoomNumber
	r.Phone = model.Phone
	r.BookingID = model.BookingID
	r.Total = model.Total
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)

	r.Items = make([]OrderItemResponse, len(model.Items))
	for i, item := range model.Items {
		r.Items[i] = OrderItemResponse{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		}
	}
}

type GetOrdersResponse struct {
	Orders    []OrderResponse `json:"orders"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetOrdersResponse) FromModels(models []model.Order, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Orders = make([]OrderResponse, len(models))
	for i, mod := range models {
		r.Orders[i].FromModel(mod)
	}
}
