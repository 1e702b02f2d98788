package usecase

import (
	"hotel-booking/internal/data/cache"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/queue"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Room         RoomService
	Availability AvailabilityService
	Booking      BookingService
}

func NewService(
	repo *repository.Repository,
	availCache cache.AvailabilityCache,
	publisher queue.Publisher,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	availability := NewAvailabilityService(repo, availCache, log)

	return &Service{
		Room:         NewRoomService(repo, availCache, log),
		Availability: availability,
		Booking:      NewBookingService(repo, availability, availCache, publisher, config, log),
	}
}
