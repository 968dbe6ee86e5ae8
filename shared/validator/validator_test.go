package validator_test

import (
	"strings"
	"testing"

	"lodgehub/shared/validator"
)

type guestTestStruct struct {
	Name     string `validate:"required" json:"name"`
	Email    string `validate:"required,email" json:"email"`
	Guests   int    `validate:"gte=1,lte=20" json:"guests"`
	Category string `validate:"oneof=standard deluxe suite" json:"category"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        *guestTestStruct
		expectError bool
	}{
		{
			name: "valid struct",
			data: &guestTestStruct{
				Name:     "John Doe",
				Email:    "john@example.com",
				Guests:   2,
				Category: "standard",
			},
			expectError: false,
		},
		{
			name: "missing required field",
			data: &guestTestStruct{
				Email:    "john@example.com",
				Guests:   2,
				Category: "standard",
			},
			expectError: true,
		},
		{
			name: "invalid email",
			data: &guestTestStruct{
				Name:     "John Doe",
				Email:    "invalid-email",
				Guests:   2,
				Category: "standard",
			},
			expectError: true,
		},
		{
			name: "guests out of range",
			data: &guestTestStruct{
				Name:     "John Doe",
				Email:    "john@example.com",
				Guests:   21,
				Category: "standard",
			},
			expectError: true,
		},
		{
			name: "invalid category",
			data: &guestTestStruct{
				Name:     "John Doe",
				Email:    "john@example.com",
				Guests:   2,
				Category: "penthouse",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(tt.data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       interface{}
		tag         string
		expectError bool
	}{
		{
			name:        "valid required string",
			field:       "test",
			tag:         "required",
			expectError: false,
		},
		{
			name:        "empty required string",
			field:       "",
			tag:         "required",
			expectError: true,
		},
		{
			name:        "valid email",
			field:       "test@example.com",
			tag:         "email",
			expectError: false,
		},
		{
			name:        "invalid email",
			field:       "invalid-email",
			tag:         "email",
			expectError: true,
		},
		{
			name:        "number out of range",
			field:       150,
			tag:         "gte=0,lte=100",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidateVarMessages(t *testing.T) {
	tests := []struct {
		name     string
		field    interface{}
		tag      string
		expected string
	}{
		{
			name:     "uuid message",
			field:    "not-a-uuid",
			tag:      "uuid",
			expected: "must be a valid UUID",
		},
		{
			name:     "oneof message",
			field:    "penthouse",
			tag:      "oneof=standard deluxe suite",
			expected: "must be one of standard deluxe suite",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if err == nil {
				t.Fatal("expected validation error, got nil")
			}

			if !strings.Contains(err.Error(), tt.expected) {
				t.Errorf("expected message containing %q, got: %v", tt.expected, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:        "valid JSON",
			jsonBody:    `{"name":"John Doe","email":"john@example.com","guests":2,"category":"standard"}`,
			expectError: false,
		},
		{
			name:        "invalid field value",
			jsonBody:    `{"name":"John Doe","email":"invalid-email","guests":2,"category":"standard"}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"name":"John Doe","email":}`,
			expectError: true,
		},
		{
			name:        "empty JSON",
			jsonBody:    `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := strings.NewReader(tt.jsonBody)

			var data guestTestStruct

			err := validator.Validate(reader, &data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}
