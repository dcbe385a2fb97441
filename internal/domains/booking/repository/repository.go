package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"time"

	"cottage/infras/otel"
	"cottage/infras/postgres"
	"cottage/internal/domains/booking/model"
	"cottage/shared/constant"
	gDto "cottage/shared/dto"
	gRepo "cottage/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	HasOverlap(ctx context.Context, roomID string, checkIn, checkOut time.Time) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// HasOverlap reports whether a live booking already covers any night of the
// half-open stay [checkIn, checkOut). Two stays overlap exactly when each
// starts before the other ends, which makes back-to-back stays compatible.
func (repo *repositoryImpl) HasOverlap(ctx context.Context, roomID string, checkIn, checkOut time.Time) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.HasOverlap")
	defer scope.End()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoomID,
				Value:    roomID,
				Operator: gDto.FilterOperatorEq,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    []string{model.StatusPending, model.StatusConfirmed},
				Operator: gDto.FilterOperatorIn,
			},
			gDto.Filter{
				Field:    model.FieldCheckInDate,
				ArgName:  "stay_check_out",
				Value:    checkOut,
				Operator: gDto.FilterOperatorLess,
			},
			gDto.Filter{
				Field:    model.FieldCheckOutDate,
				ArgName:  "stay_check_in",
				Value:    checkIn,
				Operator: gDto.FilterOperatorGreater,
			},
		},
	}

	return repo.Exist(ctx, filter) //nolint:wrapcheck
}
