// Package queue defines message payloads exchanged over the message broker.
package queue

type EventType string

const (
	EventReservationCreated       EventType = "reservation.created"
	EventReservationAmended       EventType = "reservation.amended"
	EventReservationStatusChanged EventType = "reservation.status_changed"
	EventReservationCancelled     EventType = "reservation.cancelled"
	EventReservationDeleted       EventType = "reservation.deleted"
)

// ReservationEvent is published on every lifecycle change. It carries enough
// for the concierge front-ends to notify guests without querying the
// primary database.
type ReservationEvent struct {
	Type          EventType `json:"type"`
	ReservationID string    `json:"reservation_id"`
	Code          string    `json:"code"`
	RoomTypeID    string    `json:"room_type_id"`
	Status        string    `json:"status"`
	CheckInDate   string    `json:"check_in_date"`
	CheckOutDate  string    `json:"check_out_date"`
	Quantity      int       `json:"quantity"`
	GuestName     string    `json:"guest_name"`
	TotalAmount   float64   `json:"total_amount"`
	OccurredAt    string    `json:"occurred_at"`
}
