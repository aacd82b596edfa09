package validator_test

import (
	"strings"
	"testing"

	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/validator"
)

type guestForm struct {
	Name  string `validate:"required"         json:"name"`
	Phone string `validate:"required,phone_ru" json:"phone"`
	Room  int    `validate:"required,gt=0"    json:"room"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        *guestForm
		expectError bool
	}{
		{
			name: "valid struct",
			data: &guestForm{
				Name:  "Мария",
				Phone: "+79991234567",
				Room:  205,
			},
			expectError: false,
		},
		{
			name: "missing required field",
			data: &guestForm{
				Phone: "+79991234567",
				Room:  205,
			},
			expectError: true,
		},
		{
			name: "zero room number",
			data: &guestForm{
				Name:  "Мария",
				Phone: "+79991234567",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(tt.data)

			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestPhoneRuValidation(t *testing.T) {
	tests := []struct {
		name        string
		phone       string
		expectError bool
	}{
		{
			name:        "valid russian phone",
			phone:       "+79991234567",
			expectError: false,
		},
		{
			name:        "eight prefix rejected",
			phone:       "89991234567",
			expectError: true,
		},
		{
			name:        "too short",
			phone:       "+7999123",
			expectError: true,
		},
		{
			name:        "too long",
			phone:       "+799912345678",
			expectError: true,
		},
		{
			name:        "letters rejected",
			phone:       "+7999abc4567",
			expectError: true,
		},
		{
			name:        "spaces rejected",
			phone:       "+7 999 123 45 67",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.phone, "phone_ru")

			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid json body", func(t *testing.T) {
		body := strings.NewReader(`{"name":"Мария","phone":"+79991234567","room":205}`)

		var form guestForm
		if err := validator.Validate(body, &form); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if form.Room != 205 {
			t.Errorf("expected room 205, got %d", form.Room)
		}
	})

	t.Run("malformed json body", func(t *testing.T) {
		body := strings.NewReader(`{"name":`)

		var form guestForm
		if err := validator.Validate(body, &form); err == nil {
			t.Error("expected error, got nil")
		}
	})

	t.Run("valid json failing validation", func(t *testing.T) {
		body := strings.NewReader(`{"name":"Мария","phone":"89991234567","room":205}`)

		var form guestForm
		if err := validator.Validate(body, &form); err == nil {
			t.Error("expected error, got nil")
		}
	})
}
