package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"cottage/config"
	"cottage/infras/otel/mocks"
	blockdateMocks "cottage/internal/domains/blockdate/mocks"
	bookingMocks "cottage/internal/domains/booking/mocks"
	"cottage/internal/domains/booking/model"
	"cottage/internal/domains/booking/model/dto"
	"cottage/internal/domains/booking/service"
	roomMocks "cottage/internal/domains/room/mocks"
	roomModel "cottage/internal/domains/room/model"
	cacheMocks "cottage/shared/cache/mocks"
	"cottage/shared/failure"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Booking.IDPrefix = "GC"
	cfg.App.Booking.MaxNights = 30
	cfg.App.Booking.MaxGuests = 8
	cfg.App.Booking.TaxRate = 0.18
	cfg.App.Booking.CandidateLimit = 25
	cfg.Cache.TTL = 60

	return cfg
}

func validCreateRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		RoomType:     roomModel.RoomTypeAC,
		CheckInDate:  "2026-09-10",
		CheckOutDate: "2026-09-12",
		FullName:     "Asha Patel",
		MobileNumber: "9876543210",
		Email:        "asha@example.com",
		Adults:       2,
		Children:     0,
	}
}

func acRoom(id string, price float64) roomModel.Room {
	return roomModel.Room{
		ID:            id,
		Name:          "Room " + id,
		RoomType:      roomModel.RoomTypeAC,
		PricePerNight: price,
		MaxGuests:     4,
		IsActive:      true,
	}
}

func exclusionViolation() error {
	return fmt.Errorf("failed to insert data (booking): %w", &pq.Error{Code: "23P01", Constraint: "bookings_no_overlap"})
}

func TestBookingService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRooms := roomMocks.NewMockRoom(ctrl)
	mockBlocked := blockdateMocks.NewMockBlockedDate(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockRooms, mockBlocked, testConfig(), mockCache, mockOtel)

	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	tests := []struct {
		name      string
		req       func() dto.CreateBookingRequest
		setupMock func(inserted *model.Booking)
		wantErr   error
		wantCode  int
	}{
		{
			name: "successful booking prices the stay and persists it",
			req:  validCreateRequest,
			setupMock: func(inserted *model.Booking) {
				mockRooms.EXPECT().
					FindBookable(gomock.Any(), roomModel.RoomTypeAC, 2, 25).
					Return([]roomModel.Room{acRoom("room-1", 3000)}, nil)

				mockBlocked.EXPECT().
					ExistsInRange(gomock.Any(), "room-1", gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					HasOverlap(gomock.Any(), "room-1", gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, booking model.Booking) error {
						*inserted = booking

						return nil
					})
			},
		},
		{
			name: "second candidate wins when the cheapest is taken",
			req:  validCreateRequest,
			setupMock: func(inserted *model.Booking) {
				mockRooms.EXPECT().
					FindBookable(gomock.Any(), roomModel.RoomTypeAC, 2, 25).
					Return([]roomModel.Room{acRoom("room-1", 2500), acRoom("room-2", 3000)}, nil)

				mockBlocked.EXPECT().
					ExistsInRange(gomock.Any(), "room-1", gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					HasOverlap(gomock.Any(), "room-1", gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockBlocked.EXPECT().
					ExistsInRange(gomock.Any(), "room-2", gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					HasOverlap(gomock.Any(), "room-2", gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, booking model.Booking) error {
						*inserted = booking

						return nil
					})
			},
		},
		{
			name: "check-out before check-in is rejected",
			req: func() dto.CreateBookingRequest {
				req := validCreateRequest()
				req.CheckOutDate = "2026-09-09"

				return req
			},
			setupMock: func(_ *model.Booking) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "stay longer than the ceiling is rejected",
			req: func() dto.CreateBookingRequest {
				req := validCreateRequest()
				req.CheckOutDate = "2026-10-11"

				return req
			},
			setupMock: func(_ *model.Booking) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "party above the guest ceiling is rejected",
			req: func() dto.CreateBookingRequest {
				req := validCreateRequest()
				req.Adults = 8
				req.Children = 1

				return req
			},
			setupMock: func(_ *model.Booking) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "no room can hold the party",
			req:  validCreateRequest,
			setupMock: func(_ *model.Booking) {
				mockRooms.EXPECT().
					FindBookable(gomock.Any(), roomModel.RoomTypeAC, 2, 25).
					Return([]roomModel.Room{}, nil)
			},
			wantErr: failure.NoCapacity,
		},
		{
			name: "every candidate has a blocked night",
			req:  validCreateRequest,
			setupMock: func(_ *model.Booking) {
				mockRooms.EXPECT().
					FindBookable(gomock.Any(), roomModel.RoomTypeAC, 2, 25).
					Return([]roomModel.Room{acRoom("room-1", 3000)}, nil)

				mockBlocked.EXPECT().
					ExistsInRange(gomock.Any(), "room-1", gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr: failure.NoAvailability,
		},
		{
			name: "every candidate has an overlapping booking",
			req:  validCreateRequest,
			setupMock: func(_ *model.Booking) {
				mockRooms.EXPECT().
					FindBookable(gomock.Any(), roomModel.RoomTypeAC, 2, 25).
					Return([]roomModel.Room{acRoom("room-1", 3000)}, nil)

				mockBlocked.EXPECT().
					ExistsInRange(gomock.Any(), "room-1", gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					HasOverlap(gomock.Any(), "room-1", gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr: failure.NoAvailability,
		},
		{
			name: "insert losing the race maps to the dates conflict",
			req:  validCreateRequest,
			setupMock: func(_ *model.Booking) {
				mockRooms.EXPECT().
					FindBookable(gomock.Any(), roomModel.RoomTypeAC, 2, 25).
					Return([]roomModel.Room{acRoom("room-1", 3000)}, nil)

				mockBlocked.EXPECT().
					ExistsInRange(gomock.Any(), "room-1", gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					HasOverlap(gomock.Any(), "room-1", gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(exclusionViolation())
			},
			wantErr: failure.NoAvailability,
		},
		{
			name: "insert failing for any other reason stays internal",
			req:  validCreateRequest,
			setupMock: func(_ *model.Booking) {
				mockRooms.EXPECT().
					FindBookable(gomock.Any(), roomModel.RoomTypeAC, 2, 25).
					Return([]roomModel.Room{acRoom("room-1", 3000)}, nil)

				mockBlocked.EXPECT().
					ExistsInRange(gomock.Any(), "room-1", gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					HasOverlap(gomock.Any(), "room-1", gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("connection reset"))
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "room without a positive price cannot be priced",
			req:  validCreateRequest,
			setupMock: func(_ *model.Booking) {
				mockRooms.EXPECT().
					FindBookable(gomock.Any(), roomModel.RoomTypeAC, 2, 25).
					Return([]roomModel.Room{acRoom("room-1", 0)}, nil)

				mockBlocked.EXPECT().
					ExistsInRange(gomock.Any(), "room-1", gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					HasOverlap(gomock.Any(), "room-1", gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var inserted model.Booking

			tt.setupMock(&inserted)

			res, err := svc.Create(context.Background(), tt.req())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, model.StatusPending, res.Status)
			assert.Equal(t, 2, res.TotalNights)
			assert.InDelta(t, 6000.0, res.Subtotal, 0.001)
			assert.InDelta(t, 1080.0, res.TaxAmount, 0.001)
			assert.InDelta(t, 7080.0, res.TotalAmount, 0.001)
			assert.True(t, strings.HasPrefix(res.BookingID, "GC"))
			assert.Len(t, res.BookingID, len("GC")+8+1+8)

			assert.Equal(t, res.BookingID, inserted.BookingID)
			assert.Equal(t, model.StatusPending, inserted.Status)
			assert.Equal(t, model.PaymentStatusUnpaid, inserted.PaymentStatus)
			assert.InDelta(t, res.TotalAmount, inserted.TotalAmount, 0.001)
		})
	}
}

func TestBookingService_Create_OneWinnerPerRace(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRooms := roomMocks.NewMockRoom(ctrl)
	mockBlocked := blockdateMocks.NewMockBlockedDate(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockRooms, mockBlocked, testConfig(), mockCache, mockOtel)

	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	// Every caller sees the same free room; storage admits exactly one insert
	// the way the exclusion constraint does.
	mockRooms.EXPECT().
		FindBookable(gomock.Any(), roomModel.RoomTypeAC, 2, 25).
		Return([]roomModel.Room{acRoom("room-1", 3000)}, nil).
		AnyTimes()

	mockBlocked.EXPECT().
		ExistsInRange(gomock.Any(), "room-1", gomock.Any(), gomock.Any()).
		Return(false, nil).
		AnyTimes()

	mockRepo.EXPECT().
		HasOverlap(gomock.Any(), "room-1", gomock.Any(), gomock.Any()).
		Return(false, nil).
		AnyTimes()

	var (
		mu       sync.Mutex
		admitted bool
	)

	mockRepo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ model.Booking) error {
			mu.Lock()
			defer mu.Unlock()

			if admitted {
				return exclusionViolation()
			}

			admitted = true

			return nil
		}).
		AnyTimes()

	const callers = 8

	var (
		wg        sync.WaitGroup
		resultsMu sync.Mutex
		wins      int
		conflicts int
	)

	for range callers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := svc.Create(context.Background(), validCreateRequest())

			resultsMu.Lock()
			defer resultsMu.Unlock()

			switch {
			case err == nil:
				wins++
			case errors.Is(err, failure.NoAvailability):
				conflicts++
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, callers-1, conflicts)
}

func TestBookingService_Availability(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRooms := roomMocks.NewMockRoom(ctrl)
	mockBlocked := blockdateMocks.NewMockBlockedDate(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockRooms, mockBlocked, testConfig(), mockCache, mockOtel)

	t.Run("lists only rooms free for the whole stay", func(t *testing.T) {
		mockRooms.EXPECT().
			FindBookable(gomock.Any(), roomModel.RoomTypeAC, 2, 25).
			Return([]roomModel.Room{acRoom("room-1", 2500), acRoom("room-2", 3000)}, nil)

		mockBlocked.EXPECT().
			ExistsInRange(gomock.Any(), "room-1", gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockBlocked.EXPECT().
			ExistsInRange(gomock.Any(), "room-2", gomock.Any(), gomock.Any()).
			Return(false, nil)

		mockRepo.EXPECT().
			HasOverlap(gomock.Any(), "room-2", gomock.Any(), gomock.Any()).
			Return(false, nil)

		res, err := svc.Availability(context.Background(), dto.AvailabilityRequest{
			RoomType:     roomModel.RoomTypeAC,
			CheckInDate:  "2026-09-10",
			CheckOutDate: "2026-09-12",
			Guests:       2,
		})

		assert.NoError(t, err)
		assert.True(t, res.Available)
		assert.Equal(t, 1, res.TotalData)
		assert.Equal(t, "room-2", res.Rooms[0].ID)
	})

	t.Run("rejects unordered dates", func(t *testing.T) {
		_, err := svc.Availability(context.Background(), dto.AvailabilityRequest{
			RoomType:     roomModel.RoomTypeAC,
			CheckInDate:  "2026-09-12",
			CheckOutDate: "2026-09-10",
			Guests:       2,
		})

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestBookingService_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRooms := roomMocks.NewMockRoom(ctrl)
	mockBlocked := blockdateMocks.NewMockBlockedDate(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockRooms, mockBlocked, testConfig(), mockCache, mockOtel)

	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	mockCache.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	pendingBooking := model.Booking{ID: "booking-1", Status: model.StatusPending}
	completedBooking := model.Booking{ID: "booking-2", Status: model.StatusCompleted}

	tests := []struct {
		name      string
		id        string
		req       dto.UpdateBookingStatusRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "pending booking gets confirmed",
			id:   "booking-1",
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusConfirmed},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "same status is a no-op",
			id:   "booking-1",
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusPending},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking, nil)
			},
		},
		{
			name: "completed booking never moves again",
			id:   "booking-2",
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusCancelled},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(completedBooking, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "unknown booking",
			id:   "missing",
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusConfirmed},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.UpdateStatus(context.Background(), tt.req, tt.id)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}
