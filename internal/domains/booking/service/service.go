package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"cottage/config"
	"cottage/infras/otel"
	blockdateRepo "cottage/internal/domains/blockdate/repository"
	"cottage/internal/domains/booking/model"
	"cottage/internal/domains/booking/model/dto"
	"cottage/internal/domains/booking/repository"
	roomModel "cottage/internal/domains/room/model"
	roomRepo "cottage/internal/domains/room/repository"
	"cottage/shared"
	"cottage/shared/cache"
	"cottage/shared/constant"
	gDto "cottage/shared/dto"
	"cottage/shared/failure"
	"cottage/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"

	bookingRefLen = 8
)

// allowedTransitions is the booking lifecycle: pending bookings get confirmed
// or cancelled, confirmed ones get cancelled or completed. Terminal states
// never move again.
var allowedTransitions = map[string][]string{
	model.StatusPending:   {model.StatusConfirmed, model.StatusCancelled},
	model.StatusConfirmed: {model.StatusCancelled, model.StatusCompleted},
}

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.CreateBookingResponse, error)
	Availability(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateBookingStatusRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo    repository.Booking
	rooms   roomRepo.Room
	blocked blockdateRepo.BlockedDate
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel
}

func New(repo repository.Booking, rooms roomRepo.Room, blocked blockdateRepo.BlockedDate, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:    repo,
		rooms:   rooms,
		blocked: blocked,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
	}
}

// Create admits a booking request: it walks the candidate rooms cheapest
// first, takes the first one with no blocked nights and no live overlapping
// booking, prices the stay, and persists the reservation. The storage-level
// exclusion constraint closes the race between the availability read and the
// insert, so a lost race surfaces as the same conflict the guest would have
// seen had the read come later.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.CreateBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	checkIn, checkOut, nights, err := s.validateStay(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return res, err
	}

	if req.Guests() > s.cfg.App.Booking.MaxGuests {
		return res, failure.BadRequestFromString(fmt.Sprintf("Total guests cannot exceed %d", s.cfg.App.Booking.MaxGuests)) // nolint:wrapcheck
	}

	candidates, err := s.rooms.FindBookable(ctx, req.RoomType, req.Guests(), s.cfg.App.Booking.CandidateLimit)
	if err != nil {
		log.Error().Err(err).Msg("failed to find bookable rooms")

		return res, failure.InternalFromString("Unable to check room availability") // nolint:wrapcheck
	}

	if len(candidates) == 0 {
		return res, failure.NoCapacity // nolint:wrapcheck
	}

	room, err := s.firstFreeRoom(ctx, candidates, checkIn, checkOut)
	if err != nil {
		return res, err
	}

	if room == nil {
		return res, failure.NoAvailability // nolint:wrapcheck
	}

	if room.PricePerNight <= 0 {
		log.Error().Str("roomID", room.ID).Float64("price", room.PricePerNight).Msg("room has no valid nightly price")

		return res, failure.InternalFromString("Unable to calculate booking price") // nolint:wrapcheck
	}

	subtotal := room.PricePerNight * float64(nights)
	tax := math.Round(subtotal * s.cfg.App.Booking.TaxRate)
	total := subtotal + tax

	id := uuid.NewString()
	bookingID := s.buildBookingID(id)
	booking := req.ToModel(id, bookingID, room.ID, checkIn, checkOut, nights, subtotal, tax, total)

	if err = s.repo.Insert(ctx, booking); err != nil {
		if isAvailabilityConflict(err) {
			log.Warn().Str("roomID", room.ID).Str("bookingID", bookingID).Msg("lost booking race on insert")

			return res, failure.NoAvailability // nolint:wrapcheck
		}

		log.Error().Err(err).Str("bookingID", bookingID).Msg("failed to insert booking")

		return res, failure.InternalFromString("Unable to create booking") // nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	res = dto.CreateBookingResponse{
		BookingID:    bookingID,
		Status:       model.StatusPending,
		CheckInDate:  req.CheckInDate,
		CheckOutDate: req.CheckOutDate,
		TotalNights:  nights,
		Subtotal:     subtotal,
		TaxAmount:    tax,
		TotalAmount:  total,
	}

	return res, nil
}

// Availability lists the rooms of the given type that are free for the whole
// stay, without reserving anything.
func (s *serviceImpl) Availability(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Availability")
	defer scope.End()
	defer scope.TraceIfError(err)

	checkIn, checkOut, _, err := s.validateStay(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return res, err
	}

	candidates, err := s.rooms.FindBookable(ctx, req.RoomType, req.Guests, s.cfg.App.Booking.CandidateLimit)
	if err != nil {
		log.Error().Err(err).Msg("failed to find bookable rooms")

		return res, failure.InternalFromString("Unable to check room availability") // nolint:wrapcheck
	}

	res.Rooms = []dto.AvailableRoom{}

	for i := range candidates {
		free, err := s.roomFree(ctx, candidates[i].ID, checkIn, checkOut)
		if err != nil {
			return dto.AvailabilityResponse{}, err
		}

		if free {
			res.Rooms = append(res.Rooms, dto.AvailableRoom{
				ID:            candidates[i].ID,
				Name:          candidates[i].Name,
				PricePerNight: candidates[i].PricePerNight,
				MaxGuests:     candidates[i].MaxGuests,
			})
		}
	}

	res.TotalData = len(res.Rooms)
	res.Available = res.TotalData > 0

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateBookingStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		log.Error().Msg("booking not found")

		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if booking.Status == req.Status {
		return nil
	}

	if !slices.Contains(allowedTransitions[booking.Status], req.Status) {
		return failure.BadRequestFromString(fmt.Sprintf("cannot change booking status from %s to %s", booking.Status, req.Status)) // nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldStatus:       req.Status,
		constant.FieldUpdatedAt: timezone.Now(),
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		log.Error().Msg("booking not found")

		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	return nil
}

// validateStay checks the date pair shared by booking and availability
// requests: ordered dates, stay length within the configured ceiling.
func (s *serviceImpl) validateStay(checkInRaw, checkOutRaw string) (checkIn, checkOut time.Time, nights int, err error) {
	checkIn, err = timezone.ParseDateOnly(checkInRaw)
	if err != nil {
		return checkIn, checkOut, 0, failure.BadRequestFromString("Invalid check-in date, use YYYY-MM-DD") // nolint:wrapcheck
	}

	checkOut, err = timezone.ParseDateOnly(checkOutRaw)
	if err != nil {
		return checkIn, checkOut, 0, failure.BadRequestFromString("Invalid check-out date, use YYYY-MM-DD") // nolint:wrapcheck
	}

	if !checkOut.After(checkIn) {
		return checkIn, checkOut, 0, failure.BadRequestFromString("Check-out date must be after check-in date") // nolint:wrapcheck
	}

	nights = int(checkOut.Sub(checkIn).Hours() / 24)
	if nights < 1 || nights > s.cfg.App.Booking.MaxNights {
		return checkIn, checkOut, 0, failure.BadRequestFromString(fmt.Sprintf("Stay length must be between 1 and %d nights", s.cfg.App.Booking.MaxNights)) // nolint:wrapcheck
	}

	return checkIn, checkOut, nights, nil
}

// firstFreeRoom returns the first candidate with no blocked night and no
// overlapping live booking, or nil when every candidate is taken.
func (s *serviceImpl) firstFreeRoom(ctx context.Context, candidates []roomModel.Room, checkIn, checkOut time.Time) (*roomModel.Room, error) {
	for i := range candidates {
		free, err := s.roomFree(ctx, candidates[i].ID, checkIn, checkOut)
		if err != nil {
			return nil, err
		}

		if free {
			return &candidates[i], nil
		}
	}

	return nil, nil
}

// roomFree checks both availability sources for one room. Blocked dates cover
// nights, so the last night checked is the day before check-out.
func (s *serviceImpl) roomFree(ctx context.Context, roomID string, checkIn, checkOut time.Time) (bool, error) {
	lastNight := checkOut.AddDate(0, 0, -1)

	blocked, err := s.blocked.ExistsInRange(ctx, roomID, checkIn, lastNight)
	if err != nil {
		log.Error().Err(err).Str("roomID", roomID).Msg("failed to check blocked dates")

		return false, failure.InternalFromString("Unable to check room availability") // nolint:wrapcheck
	}

	if blocked {
		return false, nil
	}

	overlap, err := s.repo.HasOverlap(ctx, roomID, checkIn, checkOut)
	if err != nil {
		log.Error().Err(err).Str("roomID", roomID).Msg("failed to check booking overlap")

		return false, failure.InternalFromString("Unable to check room availability") // nolint:wrapcheck
	}

	return !overlap, nil
}

// buildBookingID derives the guest-facing reference from the internal id:
// a fixed prefix, the UTC date stamp, and the first id segment.
func (s *serviceImpl) buildBookingID(id string) string {
	return fmt.Sprintf("%s%s-%s", s.cfg.App.Booking.IDPrefix, timezone.Now().UTC().Format(constant.DateStampFormat), id[:bookingRefLen])
}

// isAvailabilityConflict recognizes an insert rejected by the overlap
// exclusion constraint: another writer won the same room and dates first.
func isAvailabilityConflict(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	code := string(pqErr.Code)

	return code == constant.PqErrorCodeExclusionViolation || code == constant.PqErrorCodeUniqueViolation
}
