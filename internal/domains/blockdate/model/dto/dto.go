package dto

import (
	"cottage/internal/domains/blockdate/model"
	"cottage/shared"
	"cottage/shared/constant"
	"cottage/shared/timezone"

	"github.com/google/uuid"
)

type CreateBlockedDateRequest struct {
	RoomID      *string `json:"room_id"      validate:"omitempty,uuid4"`
	BlockedDate string  `json:"blocked_date" validate:"required,dateonly"`
	Reason      *string `json:"reason"       validate:"omitempty,max=200"`
}

func (c *CreateBlockedDateRequest) ToModel(blockedBy string) model.BlockedDate {
	// Validated upstream with the dateonly rule, so this cannot fail.
	date, _ := timezone.ParseDateOnly(c.BlockedDate)

	var by *string
	if blockedBy != constant.Empty {
		by = &blockedBy
	}

	return model.BlockedDate{
		ID:          uuid.NewString(),
		RoomID:      c.RoomID,
		BlockedDate: date,
		Reason:      c.Reason,
		BlockedBy:   by,
		CreatedAt:   timezone.Now(),
	}
}

type BlockedDateResponse struct {
	ID          string `json:"id"`
	RoomID      string `json:"room_id,omitempty"`
	BlockedDate string `json:"blocked_date"`
	Reason      string `json:"reason,omitempty"`
	BlockedBy   string `json:"blocked_by,omitempty"`
	CreatedAt   string `json:"created_at"`
}

func (r *BlockedDateResponse) FromModel(model model.BlockedDate) {
	r.ID = model.ID
	r.BlockedDate = timezone.Format(model.BlockedDate, constant.DateOnlyFormat)
	r.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)

	if model.RoomID != nil {
		r.RoomID = *model.RoomID
	}

	if model.Reason != nil {
		r.Reason = *model.Reason
	}

	if model.BlockedBy != nil {
		r.BlockedBy = *model.BlockedBy
	}
}

type GetBlockedDatesResponse struct {
	BlockedDates []BlockedDateResponse `json:"blocked_dates"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetBlockedDatesResponse) FromModels(models []model.BlockedDate, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.BlockedDates = make([]BlockedDateResponse, len(models))
	for i, mod := range models {
		r.BlockedDates[i].FromModel(mod)
	}
}
