package adaptor

import (
	"net/http"
	"time"

	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RoomHandler struct {
	rooms        usecase.RoomService
	availability usecase.AvailabilityService
	log          *zap.Logger
}

func NewRoomHandler(rooms usecase.RoomService, availability usecase.AvailabilityService, log *zap.Logger) *RoomHandler {
	return &RoomHandler{
		rooms:        rooms,
		availability: availability,
		log:          log.With(zap.String("handler", "room")),
	}
}

// GetRoomType handles GET /api/rooms/{id} (public)
func (h *RoomHandler) GetRoomType(w http.ResponseWriter, r *http.Request) {
	roomTypeID := chi.URLParam(r, "id")
	if roomTypeID == "" {
		utils.ResponseBadRequest(w, "Room type ID is required", nil)
		return
	}

	room, err := h.rooms.GetRoomType(r.Context(), roomTypeID)
	if err != nil {
		handleServiceError(w, h.log, err, "get room type")
		return
	}

	utils.ResponseSuccess(w, "success", room)
}

// CheckAvailability handles GET /api/rooms/{id}/availability (public)
// Query params: ?check_in=2024-01-16&check_out=2024-01-18&quantity=2
func (h *RoomHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	roomTypeID := chi.URLParam(r, "id")
	if roomTypeID == "" {
		utils.ResponseBadRequest(w, "Room type ID is required", nil)
		return
	}

	query := r.URL.Query()
	req := request.AvailabilityRequest{
		CheckInDate:  query.Get("check_in"),
		CheckOutDate: query.Get("check_out"),
		Quantity:     utils.ParseInt(query.Get("quantity"), 1),
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	// Formats already validated above
	checkIn, _ := time.Parse("2006-01-02", req.CheckInDate)
	checkOut, _ := time.Parse("2006-01-02", req.CheckOutDate)

	availability, err := h.availability.CheckAvailability(r.Context(), roomTypeID, checkIn, checkOut, req.Quantity)
	if err != nil {
		handleServiceError(w, h.log, err, "check availability")
		return
	}

	utils.ResponseSuccess(w, "success", availability)
}

// ==================== ADMIN METHODS ====================

// RecomputeInventory handles POST /api/admin/rooms/{id}/recompute (admin only)
func (h *RoomHandler) RecomputeInventory(w http.ResponseWriter, r *http.Request) {
	roomTypeID := chi.URLParam(r, "id")
	if roomTypeID == "" {
		utils.ResponseBadRequest(w, "Room type ID is required", nil)
		return
	}

	result, err := h.rooms.RecomputeInventory(r.Context(), roomTypeID)
	if err != nil {
		handleServiceError(w, h.log, err, "recompute inventory")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}
