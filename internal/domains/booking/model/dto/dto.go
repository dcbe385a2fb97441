package dto

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"cottage/internal/domains/booking/model"
	"cottage/shared"
	"cottage/shared/constant"
	gDto "cottage/shared/dto"
	gModel "cottage/shared/model"
	"cottage/shared/timezone"
)

type CreateBookingRequest struct {
	RoomType        string `json:"room_type"        validate:"required,oneof=ac non_ac"`
	CheckInDate     string `json:"check_in_date"    validate:"required,dateonly"`
	CheckOutDate    string `json:"check_out_date"   validate:"required,dateonly"`
	FullName        string `json:"full_name"        validate:"required,min=2,max=100"`
	MobileNumber    string `json:"mobile_number"    validate:"required,inmobile"`
	Email           string `json:"email"            validate:"required,email,max=255"`
	Adults          int    `json:"adults"           validate:"required,min=1,max=8"`
	Children        int    `json:"children"         validate:"omitempty,min=0,max=8"`
	SpecialRequests string `json:"special_requests" validate:"omitempty,max=500"`
}

// Normalize trims whitespace before validation so padded input neither
// sneaks past length rules nor gets stored verbatim.
func (c *CreateBookingRequest) Normalize() {
	c.FullName = strings.TrimSpace(c.FullName)
	c.MobileNumber = strings.TrimSpace(c.MobileNumber)
	c.Email = strings.TrimSpace(strings.ToLower(c.Email))
	c.SpecialRequests = strings.TrimSpace(c.SpecialRequests)
}

// Guests returns the total party size.
func (c *CreateBookingRequest) Guests() int {
	return c.Adults + c.Children
}

// Stay parses the requested dates. Both fields passed the dateonly rule
// before this is called, so parse errors cannot happen here.
func (c *CreateBookingRequest) Stay() (checkIn, checkOut time.Time) {
	checkIn, _ = timezone.ParseDateOnly(c.CheckInDate)
	checkOut, _ = timezone.ParseDateOnly(c.CheckOutDate)

	return checkIn, checkOut
}

func (c *CreateBookingRequest) ToModel(id, bookingID, roomID string, checkIn, checkOut time.Time, nights int, subtotal, tax, total float64) model.Booking {
	var specialRequests *string
	if c.SpecialRequests != constant.Empty {
		specialRequests = &c.SpecialRequests
	}

	return model.Booking{
		ID:              id,
		BookingID:       bookingID,
		RoomID:          roomID,
		RoomType:        c.RoomType,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		TotalNights:     nights,
		Adults:          c.Adults,
		Children:        c.Children,
		FullName:        c.FullName,
		MobileNumber:    c.MobileNumber,
		Email:           c.Email,
		SpecialRequests: specialRequests,
		Subtotal:        subtotal,
		TaxAmount:       tax,
		TotalAmount:     total,
		Status:          model.StatusPending,
		PaymentStatus:   model.PaymentStatusUnpaid,
		Metadata: gModel.Metadata{
			CreatedAt: timezone.Now(),
			UpdatedAt: timezone.Now(),
		},
	}
}

type CreateBookingResponse struct {
	BookingID    string  `json:"booking_id"`
	Status       string  `json:"status"`
	CheckInDate  string  `json:"check_in_date"`
	CheckOutDate string  `json:"check_out_date"`
	TotalNights  int     `json:"total_nights"`
	Subtotal     float64 `json:"subtotal"`
	TaxAmount    float64 `json:"tax_amount"`
	TotalAmount  float64 `json:"total_amount"`
}

type AvailabilityRequest struct {
	RoomType     string `json:"room_type"      validate:"required,oneof=ac non_ac"`
	CheckInDate  string `json:"check_in_date"  validate:"required,dateonly"`
	CheckOutDate string `json:"check_out_date" validate:"required,dateonly"`
	Guests       int    `json:"guests"         validate:"omitempty,min=1,max=8"`
}

// FromRequest populates the availability query from URL parameters. Guests
// defaults to one so a bare date query still gets an answer.
func (a *AvailabilityRequest) FromRequest(r *http.Request) {
	query := r.URL.Query()

	a.RoomType = query.Get("room_type")
	a.CheckInDate = query.Get("check_in_date")
	a.CheckOutDate = query.Get("check_out_date")
	a.Guests = 1

	if guests := query.Get("guests"); guests != "" {
		if parsed, err := strconv.Atoi(guests); err == nil {
			a.Guests = parsed
		}
	}
}

// Stay parses the requested dates, mirroring CreateBookingRequest.Stay.
func (a *AvailabilityRequest) Stay() (checkIn, checkOut time.Time) {
	checkIn, _ = timezone.ParseDateOnly(a.CheckInDate)
	checkOut, _ = timezone.ParseDateOnly(a.CheckOutDate)

	return checkIn, checkOut
}

type AvailableRoom struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	PricePerNight float64 `json:"price_per_night"`
	MaxGuests     int     `json:"max_guests"`
}

type AvailabilityResponse struct {
	Available bool            `json:"available"`
	Rooms     []AvailableRoom `json:"rooms"`
	TotalData int             `json:"total_data"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
}

type BookingResponse struct {
	ID              string  `json:"id"`
	BookingID       string  `json:"booking_id"`
	RoomID          string  `json:"room_id"`
	RoomType        string  `json:"room_type"`
	CheckInDate     string  `json:"check_in_date"`
	CheckOutDate    string  `json:"check_out_date"`
	TotalNights     int     `json:"total_nights"`
	Adults          int     `json:"adults"`
	Children        int     `json:"children"`
	FullName        string  `json:"full_name"`
	MobileNumber    string  `json:"mobile_number"`
	Email           string  `json:"email"`
	SpecialRequests string  `json:"special_requests,omitempty"`
	Subtotal        float64 `json:"subtotal"`
	TaxAmount       float64 `json:"tax_amount"`
	TotalAmount     float64 `json:"total_amount"`
	Status          string  `json:"status"`
	PaymentStatus   string  `json:"payment_status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.RoomID = model.RoomID
	r.RoomType = model.RoomType
	r.CheckInDate = timezone.Format(model.CheckInDate, constant.DateOnlyFormat)
	r.CheckOutDate = timezone.Format(model.CheckOutDate, constant.DateOnlyFormat)
	r.TotalNights = model.TotalNights
	r.Adults = model.Adults
	r.Children = model.Children
	r.FullName = model.FullName
	r.MobileNumber = model.MobileNumber
	r.Email = model.Email
	r.Subtotal = model.Subtotal
	r.TaxAmount = model.TaxAmount
	r.TotalAmount = model.TotalAmount
	r.Status = model.Status
	r.PaymentStatus = model.PaymentStatus

	if model.SpecialRequests != nil {
		r.SpecialRequests = *model.SpecialRequests
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
