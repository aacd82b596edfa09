package failure_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/failure"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error message to be 'test error message', got %s", f.Error())
	}
}

func TestPredefinedFailures(t *testing.T) {
	tests := []struct {
		name    string
		failure *failure.Failure
		code    int
		message string
	}{
		{
			name:    "InvalidPageParam",
			failure: failure.InvalidPageParam,
			code:    http.StatusBadRequest,
			message: "invalid page parameter",
		},
		{
			name:    "InvalidLimitParam",
			failure: failure.InvalidLimitParam,
			code:    http.StatusBadRequest,
			message: "invalid limit parameter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.failure.Code != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, tt.failure.Code)
			}
			if tt.failure.Message != tt.message {
				t.Errorf("expected message to be %s, got %s", tt.message, tt.failure.Message)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{
			name: "BadRequest",
			err:  failure.BadRequest(errors.New("bad input")),
			code: http.StatusBadRequest,
		},
		{
			name: "BadRequestFromString",
			err:  failure.BadRequestFromString("bad input"),
			code: http.StatusBadRequest,
		},
		{
			name: "Unauthorized",
			err:  failure.Unauthorized("no token"),
			code: http.StatusUnauthorized,
		},
		{
			name: "Forbidden",
			err:  failure.Forbidden("not allowed"),
			code: http.StatusForbidden,
		},
		{
			name: "NotFound",
			err:  failure.NotFound("booking"),
			code: http.StatusNotFound,
		},
		{
			name: "Conflict",
			err:  failure.Conflict("phone already linked"),
			code: http.StatusConflict,
		},
		{
			name: "InternalError",
			err:  failure.InternalError(errors.New("boom")),
			code: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := failure.GetCode(tt.err); got != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, got)
			}
		})
	}
}

func TestNilErrorsReturnNil(t *testing.T) {
	if failure.BadRequest(nil) != nil {
		t.Error("expected BadRequest(nil) to be nil")
	}
	if failure.InternalError(nil) != nil {
		t.Error("expected InternalError(nil) to be nil")
	}
}

func TestGetCode(t *testing.T) {
	if code := failure.GetCode(errors.New("plain error")); code != http.StatusInternalServerError {
		t.Errorf("expected plain errors to map to %d, got %d", http.StatusInternalServerError, code)
	}

	wrapped := failure.NotFound("guest")
	if code := failure.GetCode(wrapped); code != http.StatusNotFound {
		t.Errorf("expected %d, got %d", http.StatusNotFound, code)
	}
}

func TestIsConflict(t *testing.T) {
	if !failure.IsConflict(failure.Conflict("taken")) {
		t.Error("expected IsConflict to be true for conflict failures")
	}
	if failure.IsConflict(failure.NotFound("guest")) {
		t.Error("expected IsConflict to be false for not-found failures")
	}
	if failure.IsConflict(errors.New("plain error")) {
		t.Error("expected IsConflict to be false for plain errors")
	}
}

func TestIsNotFound(t *testing.T) {
	if !failure.IsNotFound(failure.NotFound("room")) {
		t.Error("expected IsNotFound to be true for not-found failures")
	}
	if failure.IsNotFound(failure.Conflict("taken")) {
		t.Error("expected IsNotFound to be false for conflict failures")
	}
}
