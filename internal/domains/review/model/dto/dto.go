package dto

import (
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/review/model"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared"
	gDto "github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/dto"
	gModel "github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/model"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/timezone"

	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	ChatID  int64  `json:"chat_id" validate:"omitempty"`
	Rating  int    `json:"rating"  validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=2000"`
}

func (c *CreateReviewRequest) ToModel(user string) model.Review {
	var chatID *int64
	if c.ChatID != 0 {
		chatID = &c.ChatID
	}

	return model.Review{
		ID:      uuid.NewString(),
		ChatID:  chatID,
		Rating:  c.Rating,
		Comment: c.Comment,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type ReviewResponse struct {
	ID      string `json:"id"`
	ChatID  *int64 `json:"chat_id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
	gDto.Metadata
}

func (r *ReviewResponse) FromModel(model model.Review) {
	r.ID = model.ID
	r.ChatID = model.ChatID
	r.Rating = model.Rating
	r.Comment = model.Comment
	r.Metadata.FromModel(model.Metadata)
}

type GetReviewsResponse struct {
	Reviews   []ReviewResponse `json:"reviews"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetReviewsResponse) FromModels(models []model.Review, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reviews = make([]ReviewResponse, len(models))
	for i, mod := range models {
		r.Reviews[i].FromModel(mod)
	}
}
