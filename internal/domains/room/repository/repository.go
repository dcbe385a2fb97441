package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"cottage/infras/otel"
	"cottage/infras/postgres"
	"cottage/internal/domains/room/model"
	"cottage/shared/constant"
	gDto "cottage/shared/dto"
	"cottage/shared/logger"
	gRepo "cottage/shared/repository"
)

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	FindBookable(ctx context.Context, roomType string, guests, limit int) ([]model.Room, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// FindBookable lists active rooms of the given type that can hold the party,
// cheapest first so the oldest cheapest room wins ties deterministically.
func (repo *repositoryImpl) FindBookable(ctx context.Context, roomType string, guests, limit int) (rooms []model.Room, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.FindBookable")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(`SELECT id, name, room_type, price_per_night, max_guests, description, image_url, is_active, created_at, updated_at
		FROM %s
		WHERE is_active = TRUE AND room_type = :room_type AND max_guests >= :guests
		ORDER BY price_per_night ASC, created_at ASC
		LIMIT :limit`, model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"room_type": roomType,
		"guests":    guests,
		"limit":     limit,
	}

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)

		return rooms, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &rooms, args)
	if err != nil {
		logger.ErrorWithStack(err)

		return rooms, fmt.Errorf("failed to find bookable rooms: %w", err)
	}

	return rooms, nil
}
