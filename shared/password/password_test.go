package password_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/password"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name        string
		password    string
		expectError bool
	}{
		{
			name:        "valid password",
			password:    "mySecurePassword123",
			expectError: false,
		},
		{
			name:        "empty password",
			password:    "",
			expectError: true,
		},
		{
			name:        "unicode password",
			password:    "пароль123",
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := password.Hash(tt.password)

			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				}

				return
			}

			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if hash == "" {
				t.Error("expected non-empty hash")
			}
			if hash == tt.password {
				t.Error("hash should not equal the plain password")
			}
			if !strings.HasPrefix(hash, "$2a$") {
				t.Errorf("expected bcrypt hash prefix, got %s", hash[:4])
			}
		})
	}
}

func TestHashUniqueness(t *testing.T) {
	first, err := password.Hash("samepassword")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := password.Hash("samepassword")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first == second {
		t.Error("expected different salts to produce different hashes")
	}
}

func TestVerify(t *testing.T) {
	plain := "mySecurePassword123"

	hash, err := password.Hash(plain)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name        string
		password    string
		hash        string
		expectError bool
	}{
		{
			name:        "correct password",
			password:    plain,
			hash:        hash,
			expectError: false,
		},
		{
			name:        "wrong password",
			password:    "wrongPassword",
			hash:        hash,
			expectError: true,
		},
		{
			name:        "empty password",
			password:    "",
			hash:        hash,
			expectError: true,
		},
		{
			name:        "empty hash",
			password:    plain,
			hash:        "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.hash)

			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestVerifyReturnsInvalidPassword(t *testing.T) {
	hash, err := password.Hash("correct")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := password.Verify("incorrect", hash); !errors.Is(err, password.ErrInvalidPassword) {
		t.Errorf("expected ErrInvalidPassword, got %v", err)
	}
}
