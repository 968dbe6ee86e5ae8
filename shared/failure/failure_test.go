package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"lodgehub/shared/failure"
)

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "bad request failure",
			err:      failure.BadRequestFromString("invalid payload"),
			expected: http.StatusBadRequest,
		},
		{
			name:     "not found failure",
			err:      failure.NotFound("booking not found"),
			expected: http.StatusNotFound,
		},
		{
			name:     "forbidden failure",
			err:      failure.ForbiddenError,
			expected: http.StatusForbidden,
		},
		{
			name:     "wrapped failure",
			err:      fmt.Errorf("creating booking: %w", failure.Conflict("room already booked")),
			expected: http.StatusConflict,
		},
		{
			name:     "validation failure",
			err:      failure.FromFields(map[string]string{"guestName": "Guest name is required"}),
			expected: http.StatusUnprocessableEntity,
		},
		{
			name:     "plain error defaults to internal",
			err:      errors.New("boom"),
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := failure.GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestFromFields(t *testing.T) {
	if err := failure.FromFields(nil); err != nil {
		t.Errorf("FromFields(nil) = %v, want nil", err)
	}

	if err := failure.FromFields(map[string]string{}); err != nil {
		t.Errorf("FromFields(empty) = %v, want nil", err)
	}

	err := failure.FromFields(map[string]string{
		"guests":   "Total guests must equal adults + children",
		"checkOut": "Check-out date must be after check-in date",
	})
	if err == nil {
		t.Fatal("FromFields(non-empty) = nil, want error")
	}

	expected := "checkOut: Check-out date must be after check-in date; guests: Total guests must equal adults + children"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}
