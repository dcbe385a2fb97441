package model

import "cottage/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID            = "id"
	FieldName          = "name"
	FieldRoomType      = "room_type"
	FieldPricePerNight = "price_per_night"
	FieldMaxGuests     = "max_guests"
	FieldDescription   = "description"
	FieldImageURL      = "image_url"
	FieldIsActive      = "is_active"
)

const (
	RoomTypeAC    = "ac"
	RoomTypeNonAC = "non_ac"
)

type Room struct {
	ID            string  `db:"id"`
	Name          string  `db:"name"`
	RoomType      string  `db:"room_type"`
	PricePerNight float64 `db:"price_per_night"`
	MaxGuests     int     `db:"max_guests"`
	Description   *string `db:"description"`
	ImageURL      *string `db:"image_url"`
	IsActive      bool    `db:"is_active"`
	model.Metadata
}
