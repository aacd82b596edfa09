package base64_test

import (
	"testing"

	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/base64"
)

func TestGetContentType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "png data url",
			input:    "data:image/png;base64,iVBORw0KGgo=",
			expected: "image/png",
		},
		{
			name:     "jpeg data url",
			input:    "data:image/jpeg;base64,/9j/4AAQ",
			expected: "image/jpeg",
		},
		{
			name:     "not a data url",
			input:    "plain string",
			expected: "",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base64.GetContentType(tt.input); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	data, err := base64.Decode("data:text/plain;base64,aGVsbG8=")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("expected decoded payload to be 'hello', got %q", string(data))
	}

	if _, err := base64.Decode("not a data url"); err == nil {
		t.Error("expected an error for a value without a base64 marker")
	}

	if _, err := base64.Decode("data:text/plain;base64,%%%invalid%%%"); err == nil {
		t.Error("expected an error for an invalid base64 payload")
	}
}
