package adaptor

import (
	"errors"
	"net/http"

	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Room    *RoomHandler
	Booking *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Room:    NewRoomHandler(service.Room, service.Availability, log),
		Booking: NewBookingHandler(service.Booking, log),
	}
}

// handleServiceError maps the booking error taxonomy to HTTP responses.
// Every kind gets exactly one status so callers can render a precise message.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrRoomInactive),
		errors.Is(err, usecase.ErrInvalidDateRange),
		errors.Is(err, usecase.ErrGuestCountExceeded):
		log.Warn(operation+" failed - invalid input", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrCapacityExceeded),
		errors.Is(err, usecase.ErrInvalidTransition),
		errors.Is(err, usecase.ErrAlreadyTerminal):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
