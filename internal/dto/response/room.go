package response

import (
	"hotel-booking/internal/data/entity"
)

type RoomTypeResponse struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Capacity          int     `json:"capacity"`
	NightlyRate       float64 `json:"nightly_rate"`
	TotalUnits        int     `json:"total_units"`
	AvailableUnits    int     `json:"available_units"`
	IsActive          bool    `json:"is_active"`
	Refundable        bool    `json:"refundable"`
	BreakfastIncluded bool    `json:"breakfast_included"`
	CheckInTime       string  `json:"check_in_time"`
	CheckOutTime      string  `json:"check_out_time"`
}

type AvailabilityResponse struct {
	RoomTypeID   string `json:"room_type_id"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	Quantity     int    `json:"quantity"`
	FreeUnits    int    `json:"free_units"`
	IsAvailable  bool   `json:"is_available"`
}

type RecomputeResponse struct {
	RoomTypeID     string `json:"room_type_id"`
	AvailableUnits int    `json:"available_units"`
}

func RoomTypeToResponse(room *entity.RoomType) RoomTypeResponse {
	return RoomTypeResponse{
		ID:                room.ID.String(),
		Name:              room.Name,
		Capacity:          room.Capacity,
		NightlyRate:       room.NightlyRate,
		TotalUnits:        room.TotalUnits,
		AvailableUnits:    room.AvailableUnits,
		IsActive:          room.IsActive,
		Refundable:        room.Refundable,
		BreakfastIncluded: room.BreakfastIncluded,
		CheckInTime:       room.CheckInTime,
		CheckOutTime:      room.CheckOutTime,
	}
}
