package model

import (
	"time"

	"cottage/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldBookingID       = "booking_id"
	FieldRoomID          = "room_id"
	FieldRoomType        = "room_type"
	FieldCheckInDate     = "check_in_date"
	FieldCheckOutDate    = "check_out_date"
	FieldTotalNights     = "total_nights"
	FieldAdults          = "adults"
	FieldChildren        = "children"
	FieldFullName        = "full_name"
	FieldMobileNumber    = "mobile_number"
	FieldEmail           = "email"
	FieldSpecialRequests = "special_requests"
	FieldSubtotal        = "subtotal"
	FieldTaxAmount       = "tax_amount"
	FieldTotalAmount     = "total_amount"
	FieldStatus          = "status"
	FieldPaymentStatus   = "payment_status"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

const (
	PaymentStatusUnpaid   = "unpaid"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

// Booking is a reservation row. BookingID is the human-facing reference
// handed to the guest; ID is the internal primary key.
type Booking struct {
	ID              string    `db:"id"`
	BookingID       string    `db:"booking_id"`
	RoomID          string    `db:"room_id"`
	RoomType        string    `db:"room_type"`
	CheckInDate     time.Time `db:"check_in_date"`
	CheckOutDate    time.Time `db:"check_out_date"`
	TotalNights     int       `db:"total_nights"`
	Adults          int       `db:"adults"`
	Children        int       `db:"children"`
	FullName        string    `db:"full_name"`
	MobileNumber    string    `db:"mobile_number"`
	Email           string    `db:"email"`
	SpecialRequests *string   `db:"special_requests"`
	Subtotal        float64   `db:"subtotal"`
	TaxAmount       float64   `db:"tax_amount"`
	TotalAmount     float64   `db:"total_amount"`
	Status          string    `db:"status"`
	PaymentStatus   string    `db:"payment_status"`
	model.Metadata
}

// BlocksAvailability reports whether the status still holds the room. Only
// pending and confirmed bookings keep other guests out of the dates.
func BlocksAvailability(status string) bool {
	return status == StatusPending || status == StatusConfirmed
}
