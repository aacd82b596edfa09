package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/config"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/infras/jwt"
	jwtMocks "github.com/MishailN1kolaev/diveevo-pilgrim-admin/infras/jwt/mocks"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/infras/otel/mocks"
	staffMocks "github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/staff/mocks"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/staff/model"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/staff/model/dto"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/domains/staff/service"
)

const hashedPassword = "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi" // "password"

func newStaffFixture(t *testing.T) (*staffMocks.MockStaff, *jwtMocks.MockJWT, service.Auth) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := staffMocks.NewMockStaff(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	cfg := &config.Config{}

	return mockRepo, mockJWT, service.New(mockRepo, cfg, mocks.NewOtel(), mockJWT)
}

func validStaff() model.Staff {
	return model.Staff{
		ID:       "staff-id-123",
		Email:    "admin@example.com",
		Name:     "Admin",
		Password: hashedPassword,
		Active:   true,
	}
}

func TestStaffService_Login(t *testing.T) {
	req := dto.LoginRequest{
		Email:    "admin@example.com",
		Password: "password",
	}

	t.Run("successful login", func(t *testing.T) {
		mockRepo, mockJWT, svc := newStaffFixture(t)

		staff := validStaff()

		mockRepo.EXPECT().GetByEmail(gomock.Any(), req.Email).Return(staff, nil)
		mockJWT.EXPECT().
			GenerateTokenPair(staff.ID, staff.Email).
			Return(jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}, nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), staff.ID).Return(nil)

		res, err := svc.Login(context.Background(), req)

		assert.NoError(t, err)
		assert.Equal(t, "access-token", res.AccessToken)
		assert.Equal(t, staff.Email, res.Staff.Email)
	})

	t.Run("unknown email", func(t *testing.T) {
		mockRepo, _, svc := newStaffFixture(t)

		mockRepo.EXPECT().GetByEmail(gomock.Any(), req.Email).Return(model.Staff{}, nil)

		_, err := svc.Login(context.Background(), req)

		assert.Error(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockRepo, _, svc := newStaffFixture(t)

		mockRepo.EXPECT().GetByEmail(gomock.Any(), req.Email).Return(validStaff(), nil)

		_, err := svc.Login(context.Background(), dto.LoginRequest{
			Email:    req.Email,
			Password: "wrongpassword",
		})

		assert.Error(t, err)
	})

	t.Run("deactivated account", func(t *testing.T) {
		mockRepo, _, svc := newStaffFixture(t)

		staff := validStaff()
		staff.Active = false

		mockRepo.EXPECT().GetByEmail(gomock.Any(), req.Email).Return(staff, nil)

		_, err := svc.Login(context.Background(), req)

		assert.Error(t, err)
	})

	t.Run("failed last login update does not break the login", func(t *testing.T) {
		mockRepo, mockJWT, svc := newStaffFixture(t)

		staff := validStaff()

		mockRepo.EXPECT().GetByEmail(gomock.Any(), req.Email).Return(staff, nil)
		mockJWT.EXPECT().
			GenerateTokenPair(staff.ID, staff.Email).
			Return(jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}, nil)
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), staff.ID).
			Return(errors.New("database error"))

		_, err := svc.Login(context.Background(), req)

		assert.NoError(t, err)
	})
}

func TestStaffService_Register(t *testing.T) {
	req := dto.RegisterRequest{
		Email:    "new@example.com",
		Name:     "New Staff",
		Password: "password",
	}

	t.Run("successful registration", func(t *testing.T) {
		mockRepo, _, svc := newStaffFixture(t)

		mockRepo.EXPECT().ExistByEmail(gomock.Any(), req.Email).Return(false, nil)
		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, svc.Register(context.Background(), req))
	})

	t.Run("email already registered", func(t *testing.T) {
		mockRepo, _, svc := newStaffFixture(t)

		mockRepo.EXPECT().ExistByEmail(gomock.Any(), req.Email).Return(true, nil)

		assert.Error(t, svc.Register(context.Background(), req))
	})
}

func TestStaffService_ChangePassword(t *testing.T) {
	req := dto.ChangePasswordRequest{
		CurrentPassword: "password",
		NewPassword:     "newpassword",
	}

	t.Run("successful change", func(t *testing.T) {
		mockRepo, _, svc := newStaffFixture(t)

		staff := validStaff()

		mockRepo.EXPECT().Get(gomock.Any(), staff.ID).Return(staff, nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), staff.ID).Return(nil)

		assert.NoError(t, svc.ChangePassword(context.Background(), req, staff.ID))
	})

	t.Run("wrong current password", func(t *testing.T) {
		mockRepo, _, svc := newStaffFixture(t)

		staff := validStaff()

		mockRepo.EXPECT().Get(gomock.Any(), staff.ID).Return(staff, nil)

		err := svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{
			CurrentPassword: "wrongpassword",
			NewPassword:     "newpassword",
		}, staff.ID)

		assert.Error(t, err)
	})

	t.Run("unknown staff", func(t *testing.T) {
		mockRepo, _, svc := newStaffFixture(t)

		mockRepo.EXPECT().Get(gomock.Any(), "missing-id").Return(model.Staff{}, nil)

		err := svc.ChangePassword(context.Background(), req, "missing-id")

		assert.Error(t, err)
	})
}

func TestStaffService_RefreshToken(t *testing.T) {
	t.Run("invalid refresh token", func(t *testing.T) {
		_, mockJWT, svc := newStaffFixture(t)

		mockJWT.EXPECT().
			RefreshTokens("bad-token").
			Return(jwt.TokenPair{}, errors.New("token expired"))

		_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "bad-token"})

		assert.Error(t, err)
	})

	t.Run("valid refresh token", func(t *testing.T) {
		_, mockJWT, svc := newStaffFixture(t)

		mockJWT.EXPECT().
			RefreshTokens("good-token").
			Return(jwt.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil)

		res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "good-token"})

		assert.NoError(t, err)
		assert.Equal(t, "new-access", res.AccessToken)
	})
}
