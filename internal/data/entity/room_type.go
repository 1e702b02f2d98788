package entity

// RoomType is a bookable category of room with shared capacity and rate.
// AvailableUnits is a derived cache over active reservations; it is owned by
// the booking lifecycle and recomputable from the reservation store at any
// time. Everything else is managed by the inventory admin surface.
type RoomType struct {
	Base
	Name              string  `db:"name"`
	Capacity          int     `db:"capacity"` // max guests per unit
	NightlyRate       float64 `db:"nightly_rate"`
	TotalUnits        int     `db:"total_units"`
	AvailableUnits    int     `db:"available_units"`
	IsActive          bool    `db:"is_active"`
	Refundable        bool    `db:"refundable"`
	BreakfastIncluded bool    `db:"breakfast_included"`
	CheckInTime       string  `db:"check_in_time"`
	CheckOutTime      string  `db:"check_out_time"`
}
