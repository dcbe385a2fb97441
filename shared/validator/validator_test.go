package validator_test

import (
	"strings"
	"testing"

	"cottage/shared/validator"
)

type stayDates struct {
	CheckInDate  string `validate:"required,dateonly" json:"check_in_date"`
	CheckOutDate string `validate:"required,dateonly" json:"check_out_date"`
}

type guestContact struct {
	FullName     string `validate:"required,min=2,max=100" json:"full_name"`
	MobileNumber string `validate:"required,inmobile"      json:"mobile_number"`
	Email        string `validate:"required,email"         json:"email"`
}

func TestValidateStruct_DateOnly(t *testing.T) {
	tests := []struct {
		name        string
		data        stayDates
		expectError bool
	}{
		{
			name:        "valid dates",
			data:        stayDates{CheckInDate: "2026-09-10", CheckOutDate: "2026-09-12"},
			expectError: false,
		},
		{
			name:        "wrong format",
			data:        stayDates{CheckInDate: "10-09-2026", CheckOutDate: "2026-09-12"},
			expectError: true,
		},
		{
			name:        "missing zero padding",
			data:        stayDates{CheckInDate: "2026-9-1", CheckOutDate: "2026-09-12"},
			expectError: true,
		},
		{
			name:        "impossible calendar date",
			data:        stayDates{CheckInDate: "2026-02-30", CheckOutDate: "2026-03-02"},
			expectError: true,
		},
		{
			name:        "date with time suffix",
			data:        stayDates{CheckInDate: "2026-09-10T00:00:00Z", CheckOutDate: "2026-09-12"},
			expectError: true,
		},
		{
			name:        "missing check-out",
			data:        stayDates{CheckInDate: "2026-09-10"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidateStruct_Mobile(t *testing.T) {
	tests := []struct {
		name        string
		mobile      string
		expectError bool
	}{
		{"valid number", "9876543210", false},
		{"valid number starting with six", "6123456789", false},
		{"leading digit below six", "5876543210", true},
		{"nine digits", "987654321", true},
		{"eleven digits", "98765432100", true},
		{"with country code", "+919876543210", true},
		{"letters", "98765abcde", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := guestContact{
				FullName:     "Asha Patel",
				MobileNumber: tt.mobile,
				Email:        "asha@example.com",
			}

			err := validator.ValidateStruct(&data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidate_FromReader(t *testing.T) {
	body := `{"full_name": "Asha Patel", "mobile_number": "9876543210", "email": "asha@example.com"}`

	var data guestContact
	if err := validator.Validate(strings.NewReader(body), &data); err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	if data.FullName != "Asha Patel" {
		t.Errorf("expected decoded name, got %s", data.FullName)
	}
}

func TestValidate_MalformedBody(t *testing.T) {
	var data guestContact
	if err := validator.Validate(strings.NewReader("{not json"), &data); err == nil {
		t.Error("expected decode error, got nil")
	}
}

func TestValidateVar(t *testing.T) {
	if err := validator.ValidateVar("2026-09-10", "dateonly"); err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	if err := validator.ValidateVar("not-a-date", "dateonly"); err == nil {
		t.Error("expected validation error, got nil")
	}
}
