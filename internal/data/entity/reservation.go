package entity

import (
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationStatusPending    ReservationStatus = "pending"
	ReservationStatusConfirmed  ReservationStatus = "confirmed"
	ReservationStatusCheckedIn  ReservationStatus = "checked_in"
	ReservationStatusCheckedOut ReservationStatus = "checked_out"
	ReservationStatusCancelled  ReservationStatus = "cancelled"
	ReservationStatusNoShow     ReservationStatus = "no_show"
)

// allowedTransitions is the single place the lifecycle is defined. The table
// is directional; there is no path out of a terminal status.
var allowedTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationStatusPending:    {ReservationStatusConfirmed, ReservationStatusCancelled},
	ReservationStatusConfirmed:  {ReservationStatusCheckedIn, ReservationStatusCancelled, ReservationStatusNoShow},
	ReservationStatusCheckedIn:  {ReservationStatusCheckedOut},
	ReservationStatusCheckedOut: {},
	ReservationStatusCancelled:  {},
	ReservationStatusNoShow:     {},
}

// IsValidStatus reports whether s is one of the known statuses
func IsValidStatus(s ReservationStatus) bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransition reports whether from -> to is in the allowed table
func CanTransition(from, to ReservationStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status has no further transitions
func (s ReservationStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0 && IsValidStatus(s)
}

// IsActive reports whether a reservation in this status holds units.
// Cancelled and no-show reservations release their units back to the pool.
func (s ReservationStatus) IsActive() bool {
	return s != ReservationStatusCancelled && s != ReservationStatusNoShow
}

type DiscountType string

const (
	DiscountTypeNone       DiscountType = ""
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// Reservation is one guest's booking of Quantity units of a RoomType over
// [CheckInDate, CheckOutDate). Monetary fields are computed once at creation
// (or repriced on date/quantity amendment using the NightlyRate snapshot) and
// never re-derived from current room rates.
type Reservation struct {
	Base
	Code             string            `db:"code"`
	RoomTypeID       uuid.UUID         `db:"room_type_id"`
	CheckInDate      time.Time         `db:"check_in_date"`
	CheckOutDate     time.Time         `db:"check_out_date"`
	Nights           int               `db:"nights"`
	Quantity         int               `db:"quantity"`
	GuestCount       int               `db:"guest_count"`
	GuestName        string            `db:"guest_name"`
	GuestEmail       string            `db:"guest_email"`
	GuestPhone       string            `db:"guest_phone"`
	AdditionalGuests []string          `db:"additional_guests"`
	NightlyRate      float64           `db:"nightly_rate"` // rate snapshot at creation
	DiscountType     DiscountType      `db:"discount_type"`
	DiscountValue    float64           `db:"discount_value"`
	BaseAmount       float64           `db:"base_amount"`
	ExtrasAmount     float64           `db:"extras_amount"`
	DiscountAmount   float64           `db:"discount_amount"`
	TaxRate          float64           `db:"tax_rate"`
	TaxAmount        float64           `db:"tax_amount"`
	TotalAmount      float64           `db:"total_amount"`
	PaymentMethod    string            `db:"payment_method"`
	Status           ReservationStatus `db:"status"`
	CreatedBy        string            `db:"created_by"`
	UpdatedBy        string            `db:"updated_by"`
}

// Overlaps reports whether the reservation interval shares at least one night
// with [checkIn, checkOut). Half-open semantics: a checkout date equal to
// another booking's check-in does not overlap (same-day turnover).
func (r *Reservation) Overlaps(checkIn, checkOut time.Time) bool {
	return r.CheckInDate.Before(checkOut) && checkIn.Before(r.CheckOutDate)
}
