package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"cottage/shared/failure"
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
		{
			name:    "ForbiddenError",
			failure: failure.ForbiddenError,
			code:    http.StatusForbidden,
			message: "You don't have the required permissions",
		},
		{
			name:    "NoCapacity",
			failure: failure.NoCapacity,
			code:    http.StatusConflict,
			message: "No rooms available for the selected guest count",
		},
		{
			name:    "NoAvailability",
			failure: failure.NoAvailability,
			code:    http.StatusConflict,
			message: "No rooms available for the selected dates",
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
		{"BadRequest", failure.BadRequest(errors.New("bad input")), http.StatusBadRequest},
		{"BadRequestFromString", failure.BadRequestFromString("bad input"), http.StatusBadRequest},
		{"Unauthorized", failure.Unauthorized("no token"), http.StatusUnauthorized},
		{"InternalError", failure.InternalError(errors.New("boom")), http.StatusInternalServerError},
		{"InternalFromString", failure.InternalFromString("boom"), http.StatusInternalServerError},
		{"NotFound", failure.NotFound("booking not found"), http.StatusNotFound},
		{"Conflict", failure.Conflict("already taken"), http.StatusConflict},
		{"Forbidden", failure.Forbidden("admins only"), http.StatusForbidden},
		{"TooManyRequests", failure.TooManyRequests("slow down"), http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := failure.GetCode(tt.err); got != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, got)
			}
		})
	}
}

func TestConstructorsWithNilError(t *testing.T) {
	if err := failure.BadRequest(nil); err != nil {
		t.Errorf("expected BadRequest(nil) to be nil, got %v", err)
	}

	if err := failure.InternalError(nil); err != nil {
		t.Errorf("expected InternalError(nil) to be nil, got %v", err)
	}
}

func TestGetCode(t *testing.T) {
	if got := failure.GetCode(errors.New("plain error")); got != http.StatusInternalServerError {
		t.Errorf("expected plain errors to map to %d, got %d", http.StatusInternalServerError, got)
	}

	wrapped := fmt.Errorf("wrapped: %w", failure.NoAvailability)
	if got := failure.GetCode(wrapped); got != http.StatusConflict {
		t.Errorf("expected wrapped failure to keep code %d, got %d", http.StatusConflict, got)
	}
}
