package dto

import (
	"time"

	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/infras/jwt"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/staff/model"
	gModel "github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/model"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/timezone"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email,max=100"`
	Name     string `json:"name"     validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func (r *RegisterRequest) ToModel(user, hashedPassword string) model.Staff {
	return model.Staff{
		ID:       uuid.NewString(),
		Email:    r.Email,
		Name:     r.Name,
		Password: hashedPassword,
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=72"`
}

type TokenResponse struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

func (t *TokenResponse) FromTokenPair(pair jwt.TokenPair) {
	t.AccessToken = pair.AccessToken
	t.RefreshToken = pair.RefreshToken
	t.AccessExpiresAt = pair.AccessExpiresAt
	t.RefreshExpiresAt = pair.RefreshExpiresAt
}

type StaffResponse struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

func (r *StaffResponse) FromModel(model model.Staff) {
	r.ID = model.ID
	r.Email = model.Email
	r.Name = model.Name
	r.Active = model.Active
}

type LoginResponse struct {
	Staff StaffResponse `json:"staff"`
	TokenResponse
}
