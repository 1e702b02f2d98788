package repository

import (
	"hotel-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	RoomType         RoomTypeRepository
	Reservation      ReservationRepository
	ReservationExtra ReservationExtraRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		RoomType:         NewRoomTypeRepository(db, log),
		Reservation:      NewReservationRepository(db, log),
		ReservationExtra: NewReservationExtraRepository(db, log),
	}
}
