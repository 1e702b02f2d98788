package request

type ExtraInput struct {
	Name      string  `json:"name" validate:"required"`
	UnitPrice float64 `json:"unit_price" validate:"gte=0"`
	Quantity  int     `json:"quantity" validate:"required,min=1"`
}

type DiscountInput struct {
	Type  string  `json:"type" validate:"required,oneof=percentage fixed"`
	Value float64 `json:"value" validate:"gte=0"`
}

type CreateBookingRequest struct {
	RoomTypeID       string         `json:"room_type_id" validate:"required,uuid4"`
	CheckInDate      string         `json:"check_in_date" validate:"required,datetime=2006-01-02"`
	CheckOutDate     string         `json:"check_out_date" validate:"required,datetime=2006-01-02"`
	Quantity         int            `json:"quantity" validate:"required,min=1"`
	GuestCount       int            `json:"guest_count" validate:"required,min=1"`
	GuestName        string         `json:"guest_name" validate:"required"`
	GuestEmail       string         `json:"guest_email" validate:"omitempty,email"`
	GuestPhone       string         `json:"guest_phone,omitempty"`
	AdditionalGuests []string       `json:"additional_guests,omitempty"`
	Extras           []ExtraInput   `json:"extras,omitempty" validate:"omitempty,dive"`
	Discount         *DiscountInput `json:"discount,omitempty"`
	PaymentMethod    string         `json:"payment_method" validate:"required"`
	// Confirm moves the reservation straight to confirmed after creation,
	// used by staff-side bookings with payment already settled.
	Confirm bool `json:"confirm,omitempty"`
}

type AmendBookingRequest struct {
	CheckInDate  *string `json:"check_in_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	CheckOutDate *string `json:"check_out_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Quantity     *int    `json:"quantity,omitempty" validate:"omitempty,min=1"`
	GuestCount   *int    `json:"guest_count,omitempty" validate:"omitempty,min=1"`
}

type TransitionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed checked_in checked_out cancelled no_show"`
}
