package usecase

import (
	"context"
	"fmt"

	"hotel-booking/internal/data/cache"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RoomService interface {
	GetRoomType(ctx context.Context, roomTypeID string) (*response.RoomTypeResponse, error)

	// RecomputeInventory re-derives the available-unit cache from the
	// reservation store. Idempotent; the recovery path after a failed
	// post-write recomputation is simply to call it again.
	RecomputeInventory(ctx context.Context, roomTypeID string) (*response.RecomputeResponse, error)
}

type roomService struct {
	repo  *repository.Repository
	cache cache.AvailabilityCache
	log   *zap.Logger
}

func NewRoomService(repo *repository.Repository, availCache cache.AvailabilityCache, log *zap.Logger) RoomService {
	return &roomService{
		repo:  repo,
		cache: availCache,
		log:   log.With(zap.String("service", "room")),
	}
}

func (s *roomService) GetRoomType(ctx context.Context, roomTypeID string) (*response.RoomTypeResponse, error) {
	roomUUID, err := uuid.Parse(roomTypeID)
	if err != nil {
		return nil, fmt.Errorf("invalid room type ID format %s: %w", roomTypeID, ErrNotFound)
	}

	room, err := s.repo.RoomType.FindByID(ctx, roomUUID)
	if err != nil {
		return nil, fmt.Errorf("get room type: %w", err)
	}
	if room == nil {
		return nil, fmt.Errorf("room type %s: %w", roomTypeID, ErrNotFound)
	}

	resp := response.RoomTypeToResponse(room)
	return &resp, nil
}

func (s *roomService) RecomputeInventory(ctx context.Context, roomTypeID string) (*response.RecomputeResponse, error) {
	roomUUID, err := uuid.Parse(roomTypeID)
	if err != nil {
		return nil, fmt.Errorf("invalid room type ID format %s: %w", roomTypeID, ErrNotFound)
	}

	room, err := s.repo.RoomType.FindByID(ctx, roomUUID)
	if err != nil {
		return nil, fmt.Errorf("recompute inventory: %w", err)
	}
	if room == nil {
		return nil, fmt.Errorf("room type %s: %w", roomTypeID, ErrNotFound)
	}

	available, err := s.repo.RoomType.RecomputeAvailableUnits(ctx, roomUUID)
	if err != nil {
		return nil, fmt.Errorf("recompute inventory: %w", err)
	}

	s.cache.InvalidateRoom(ctx, roomUUID)

	s.log.Info("Inventory recomputed",
		zap.String("room_type_id", roomTypeID),
		zap.Int("available_units", available),
	)

	return &response.RecomputeResponse{
		RoomTypeID:     roomTypeID,
		AvailableUnits: available,
	}, nil
}
