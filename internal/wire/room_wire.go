package wire

import (
	"hotel-booking/internal/adaptor"
	"hotel-booking/pkg/middleware"
	"hotel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireRoom(
	r chi.Router,
	roomHandler *adaptor.RoomHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/rooms/{id} - Room type details (public)
	r.Get("/api/rooms/{id}", roomHandler.GetRoomType)

	// GET /api/rooms/{id}/availability - Check free units for a date range (public)
	// Requires query params: ?check_in=2024-01-16&check_out=2024-01-18&quantity=2
	r.Get("/api/rooms/{id}/availability", roomHandler.CheckAvailability)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/rooms", func(r chi.Router) {
		r.Use(middleware.Actor(log))
		r.Use(middleware.Admin(config.Auth.AdminKey, log))

		// POST /api/admin/rooms/{id}/recompute - Re-derive the available-unit cache
		r.Post("/{id}/recompute", roomHandler.RecomputeInventory)
	})
}
