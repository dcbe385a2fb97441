package dto

import (
	"cottage/internal/domains/room/model"
	"cottage/shared"
	gDto "cottage/shared/dto"
	gModel "cottage/shared/model"
	"cottage/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	Name          string  `json:"name"            validate:"required,max=100"`
	RoomType      string  `json:"room_type"       validate:"required,oneof=ac non_ac"`
	PricePerNight float64 `json:"price_per_night" validate:"required,gt=0"`
	MaxGuests     int     `json:"max_guests"      validate:"required,min=1,max=8"`
	Description   *string `json:"description"     validate:"omitempty,max=500"`
	ImageURL      *string `json:"image_url"       validate:"omitempty,url,max=255"`
	IsActive      *bool   `json:"is_active"       validate:"omitempty"`
}

func (c *CreateRoomRequest) ToModel() model.Room {
	active := true
	if c.IsActive != nil {
		active = *c.IsActive
	}

	return model.Room{
		ID:            uuid.NewString(),
		Name:          c.Name,
		RoomType:      c.RoomType,
		PricePerNight: c.PricePerNight,
		MaxGuests:     c.MaxGuests,
		Description:   c.Description,
		ImageURL:      c.ImageURL,
		IsActive:      active,
		Metadata: gModel.Metadata{
			CreatedAt: timezone.Now(),
			UpdatedAt: timezone.Now(),
		},
	}
}

type UpdateRoomRequest struct {
	Name          string   `db:"name"            json:"name"            validate:"omitempty,max=100"`
	RoomType      string   `db:"room_type"       json:"room_type"       validate:"omitempty,oneof=ac non_ac"`
	PricePerNight *float64 `db:"price_per_night" json:"price_per_night" validate:"omitempty,gt=0"`
	MaxGuests     *int     `db:"max_guests"      json:"max_guests"      validate:"omitempty,min=1,max=8"`
	Description   *string  `db:"description"     json:"description"     validate:"omitempty,max=500"`
	ImageURL      *string  `db:"image_url"       json:"image_url"       validate:"omitempty,url,max=255"`
	IsActive      *bool    `db:"is_active"       json:"is_active"       validate:"omitempty"`
}

type RoomResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	RoomType      string  `json:"room_type"`
	PricePerNight float64 `json:"price_per_night"`
	MaxGuests     int     `json:"max_guests"`
	Description   string  `json:"description,omitempty"`
	ImageURL      string  `json:"image_url,omitempty"`
	IsActive      bool    `json:"is_active"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Name = model.Name
	r.RoomType = model.RoomType
	r.PricePerNight = model.PricePerNight
	r.MaxGuests = model.MaxGuests
	r.IsActive = model.IsActive

	if model.Description != nil {
		r.Description = *model.Description
	}

	if model.ImageURL != nil {
		r.ImageURL = *model.ImageURL
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
