package response

import (
	"time"

	"hotel-booking/internal/data/entity"
)

type ExtraResponse struct {
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

type ReservationResponse struct {
	ID               string                   `json:"id"`
	Code             string                   `json:"code"`
	RoomTypeID       string                   `json:"room_type_id"`
	RoomTypeName     string                   `json:"room_type_name,omitempty"`
	CheckInDate      string                   `json:"check_in_date"`
	CheckOutDate     string                   `json:"check_out_date"`
	Nights           int                      `json:"nights"`
	Quantity         int                      `json:"quantity"`
	GuestCount       int                      `json:"guest_count"`
	GuestName        string                   `json:"guest_name"`
	GuestEmail       string                   `json:"guest_email,omitempty"`
	GuestPhone       string                   `json:"guest_phone,omitempty"`
	AdditionalGuests []string                 `json:"additional_guests,omitempty"`
	Extras           []ExtraResponse          `json:"extras,omitempty"`
	NightlyRate      float64                  `json:"nightly_rate"`
	DiscountType     entity.DiscountType      `json:"discount_type,omitempty"`
	DiscountValue    float64                  `json:"discount_value,omitempty"`
	BaseAmount       float64                  `json:"base_amount"`
	ExtrasAmount     float64                  `json:"extras_amount"`
	DiscountAmount   float64                  `json:"discount_amount"`
	TaxAmount        float64                  `json:"tax_amount"`
	TotalAmount      float64                  `json:"total_amount"`
	PaymentMethod    string                   `json:"payment_method"`
	Status           entity.ReservationStatus `json:"status"`
	CreatedAt        time.Time                `json:"created_at"`
	UpdatedAt        time.Time                `json:"updated_at"`
}

// ReservationToResponse converts the entity plus its extras
func ReservationToResponse(res *entity.Reservation, extras []*entity.ReservationExtra, roomName string) ReservationResponse {
	extraResponses := make([]ExtraResponse, len(extras))
	for i, extra := range extras {
		extraResponses[i] = ExtraResponse{
			Name:      extra.Name,
			UnitPrice: extra.UnitPrice,
			Quantity:  extra.Quantity,
		}
	}

	return ReservationResponse{
		ID:               res.ID.String(),
		Code:             res.Code,
		RoomTypeID:       res.RoomTypeID.String(),
		RoomTypeName:     roomName,
		CheckInDate:      res.CheckInDate.Format("2006-01-02"),
		CheckOutDate:     res.CheckOutDate.Format("2006-01-02"),
		Nights:           res.Nights,
		Quantity:         res.Quantity,
		GuestCount:       res.GuestCount,
		GuestName:        res.GuestName,
		GuestEmail:       res.GuestEmail,
		GuestPhone:       res.GuestPhone,
		AdditionalGuests: res.AdditionalGuests,
		Extras:           extraResponses,
		NightlyRate:      res.NightlyRate,
		DiscountType:     res.DiscountType,
		DiscountValue:    res.DiscountValue,
		BaseAmount:       res.BaseAmount,
		ExtrasAmount:     res.ExtrasAmount,
		DiscountAmount:   res.DiscountAmount,
		TaxAmount:        res.TaxAmount,
		TotalAmount:      res.TotalAmount,
		PaymentMethod:    res.PaymentMethod,
		Status:           res.Status,
		CreatedAt:        res.CreatedAt,
		UpdatedAt:        res.UpdatedAt,
	}
}
