package entity

import "github.com/google/uuid"

// ReservationExtra is a priced add-on selected at booking time
// (airport pickup, extra bed, late checkout and the like).
type ReservationExtra struct {
	BaseSimple
	ReservationID uuid.UUID `db:"reservation_id"`
	Name          string    `db:"name"`
	UnitPrice     float64   `db:"unit_price"`
	Quantity      int       `db:"quantity"`
}
