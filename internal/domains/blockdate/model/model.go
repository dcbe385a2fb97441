package model

import "time"

const (
	TableName  = "blocked_dates"
	EntityName = "blocked_date"

	FieldID          = "id"
	FieldRoomID      = "room_id"
	FieldBlockedDate = "blocked_date"
	FieldReason      = "reason"
	FieldBlockedBy   = "blocked_by"
)

// BlockedDate marks one calendar night as unsellable. A nil RoomID blocks the
// whole property for that night.
type BlockedDate struct {
	ID          string    `db:"id"`
	RoomID      *string   `db:"room_id"`
	BlockedDate time.Time `db:"blocked_date"`
	Reason      *string   `db:"reason"`
	BlockedBy   *string   `db:"blocked_by"`
	CreatedAt   time.Time `db:"created_at"`
}
