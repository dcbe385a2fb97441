package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"time"

	"cottage/infras/otel"
	"cottage/infras/postgres"
	"cottage/internal/domains/blockdate/model"
	"cottage/shared/constant"
	gDto "cottage/shared/dto"
	gRepo "cottage/shared/repository"
)

type BlockedDate interface {
	Insert(ctx context.Context, model model.BlockedDate) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.BlockedDate, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.BlockedDate, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	ExistsInRange(ctx context.Context, roomID string, firstNight, lastNight time.Time) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.BlockedDate]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) BlockedDate {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.BlockedDate](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// ExistsInRange reports whether any night in [firstNight, lastNight] is blocked
// for the room, counting property-wide blocks (NULL room_id) against every room.
func (repo *repositoryImpl) ExistsInRange(ctx context.Context, roomID string, firstNight, lastNight time.Time) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".blocked_date.ExistsInRange")
	defer scope.End()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldBlockedDate,
				ArgName:  "first_night",
				Value:    firstNight,
				Operator: gDto.FilterOperatorGreaterEq,
			},
			gDto.Filter{
				Field:    model.FieldBlockedDate,
				ArgName:  "last_night",
				Value:    lastNight,
				Operator: gDto.FilterOperatorLessEq,
			},
			gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorOr,
				Filters: []any{
					gDto.Filter{
						Field:    model.FieldRoomID,
						Operator: gDto.FilterIsNull,
					},
					gDto.Filter{
						Field:    model.FieldRoomID,
						Value:    roomID,
						Operator: gDto.FilterOperatorEq,
					},
				},
			},
		},
	}

	return repo.Exist(ctx, filter) //nolint:wrapcheck
}
