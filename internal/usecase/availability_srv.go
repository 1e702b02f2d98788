package usecase

import (
	"context"
	"fmt"
	"time"

	"hotel-booking/internal/data/cache"
	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AvailabilityService interface {
	// CheckAvailability reports whether quantity additional units fit into
	// [checkIn, checkOut) and how many units are actually free.
	CheckAvailability(ctx context.Context, roomTypeID string, checkIn, checkOut time.Time, quantity int) (*response.AvailabilityResponse, error)

	// FreeUnits derives remaining capacity from the reservation store.
	// excludeID leaves one reservation out of the overlap sum so an
	// amendment does not conflict with itself.
	FreeUnits(ctx context.Context, room *entity.RoomType, checkIn, checkOut time.Time, excludeID *uuid.UUID) (int, error)
}

type availabilityService struct {
	repo  *repository.Repository
	cache cache.AvailabilityCache
	log   *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, availCache cache.AvailabilityCache, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo:  repo,
		cache: availCache,
		log:   log.With(zap.String("service", "availability")),
	}
}

func (s *availabilityService) CheckAvailability(ctx context.Context, roomTypeID string, checkIn, checkOut time.Time, quantity int) (*response.AvailabilityResponse, error) {
	roomUUID, err := uuid.Parse(roomTypeID)
	if err != nil {
		return nil, fmt.Errorf("invalid room type ID format %s: %w", roomTypeID, ErrNotFound)
	}

	if !checkOut.After(checkIn) {
		return nil, fmt.Errorf("check-out %s must be after check-in %s: %w",
			checkOut.Format("2006-01-02"), checkIn.Format("2006-01-02"), ErrInvalidDateRange)
	}
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1, got %d: %w", quantity, ErrInvalidDateRange)
	}

	room, err := s.repo.RoomType.FindByID(ctx, roomUUID)
	if err != nil {
		return nil, fmt.Errorf("check availability: %w", err)
	}
	if room == nil {
		return nil, fmt.Errorf("room type %s: %w", roomTypeID, ErrNotFound)
	}

	// Cached counts are advisory only; capacity-affecting writes re-derive
	// under the room lock in the booking service.
	freeUnits, hit := s.cache.GetFreeUnits(ctx, roomUUID, checkIn, checkOut)
	if !hit {
		freeUnits, err = s.FreeUnits(ctx, room, checkIn, checkOut, nil)
		if err != nil {
			return nil, err
		}
		s.cache.SetFreeUnits(ctx, roomUUID, checkIn, checkOut, freeUnits)
	}

	s.log.Debug("Availability checked",
		zap.String("room_type_id", roomTypeID),
		zap.Time("check_in", checkIn),
		zap.Time("check_out", checkOut),
		zap.Int("requested", quantity),
		zap.Int("free_units", freeUnits),
		zap.Bool("cache_hit", hit),
	)

	return &response.AvailabilityResponse{
		RoomTypeID:   roomTypeID,
		CheckInDate:  checkIn.Format("2006-01-02"),
		CheckOutDate: checkOut.Format("2006-01-02"),
		Quantity:     quantity,
		FreeUnits:    freeUnits,
		IsAvailable:  freeUnits >= quantity,
	}, nil
}

func (s *availabilityService) FreeUnits(ctx context.Context, room *entity.RoomType, checkIn, checkOut time.Time, excludeID *uuid.UUID) (int, error) {
	overlapping, err := s.repo.Reservation.SumOverlappingQuantity(ctx, room.ID, checkIn, checkOut, excludeID)
	if err != nil {
		return 0, fmt.Errorf("derive free units: %w", err)
	}

	freeUnits := room.TotalUnits - overlapping
	if freeUnits < 0 {
		// Oversold state, e.g. totalUnits was reduced after bookings existed
		freeUnits = 0
	}

	return freeUnits, nil
}
