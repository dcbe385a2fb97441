package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"cottage/config"
	"cottage/infras/otel/mocks"
	blockdateMocks "cottage/internal/domains/blockdate/mocks"
	"cottage/internal/domains/blockdate/model"
	"cottage/internal/domains/blockdate/model/dto"
	"cottage/internal/domains/blockdate/service"
	cacheMocks "cottage/shared/cache/mocks"
	"cottage/shared/constant"
	gDto "cottage/shared/dto"
	"cottage/shared/failure"
)

func TestBlockedDateService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := blockdateMocks.NewMockBlockedDate(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, &config.Config{}, mockCache, mockOtel)

	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	t.Run("records who blocked the date", func(t *testing.T) {
		var inserted model.BlockedDate

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, blocked model.BlockedDate) error {
				inserted = blocked

				return nil
			})

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")

		roomID := "room-1"
		err := svc.Create(ctx, dto.CreateBlockedDateRequest{
			RoomID:      &roomID,
			BlockedDate: "2026-09-15",
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, inserted.ID)
		assert.NotNil(t, inserted.BlockedBy)
		assert.Equal(t, "admin-1", *inserted.BlockedBy)
		assert.Equal(t, "room-1", *inserted.RoomID)
	})

	t.Run("property-wide block has no room and no actor", func(t *testing.T) {
		var inserted model.BlockedDate

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, blocked model.BlockedDate) error {
				inserted = blocked

				return nil
			})

		err := svc.Create(context.Background(), dto.CreateBlockedDateRequest{
			BlockedDate: "2026-09-15",
		})

		assert.NoError(t, err)
		assert.Nil(t, inserted.RoomID)
		assert.Nil(t, inserted.BlockedBy)
	})
}

func TestBlockedDateService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := blockdateMocks.NewMockBlockedDate(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, &config.Config{}, mockCache, mockOtel)

	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	t.Run("cache miss counts and lists", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss")).
			Times(2)

		mockRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(1, nil)

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.BlockedDate{{ID: "blocked-1"}}, nil)

		res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

		assert.NoError(t, err)
		assert.Len(t, res.BlockedDates, 1)
		assert.Equal(t, 1, res.TotalData)
	})
}

func TestBlockedDateService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := blockdateMocks.NewMockBlockedDate(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, &config.Config{}, mockCache, mockOtel)

	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	t.Run("successful delete", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockRepo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.Delete(context.Background(), "blocked-1")

		assert.NoError(t, err)
	})

	t.Run("missing block maps to not found", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.Delete(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
