package wire

import (
	"hotel-booking/internal/adaptor"
	"hotel-booking/pkg/middleware"
	"hotel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require caller identity) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Actor(log))

		// POST /api/bookings - Create a reservation
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// GET /api/bookings/{id} - Reservation details
		r.Get("/api/bookings/{id}", bookingHandler.GetBooking)

		// PATCH /api/bookings/{id} - Amend dates/quantity/guests
		r.Patch("/api/bookings/{id}", bookingHandler.AmendBooking)

		// PUT /api/bookings/{id}/status - Lifecycle transition
		r.Put("/api/bookings/{id}/status", bookingHandler.TransitionStatus)

		// PUT /api/bookings/{id}/cancel - Cancel the reservation
		r.Put("/api/bookings/{id}/cancel", bookingHandler.CancelBooking)
	})

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Actor(log))
		r.Use(middleware.Admin(config.Auth.AdminKey, log))

		// GET /api/admin/rooms/{id}/bookings - All reservations for a room type
		r.Get("/api/admin/rooms/{id}/bookings", bookingHandler.ListRoomBookings)

		// DELETE /api/admin/bookings/{id} - Hard delete (privileged escape hatch)
		r.Delete("/api/admin/bookings/{id}", bookingHandler.DeleteBooking)
	})
}
