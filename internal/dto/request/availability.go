package request

type AvailabilityRequest struct {
	CheckInDate  string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOutDate string `json:"check_out" validate:"required,datetime=2006-01-02"`
	Quantity     int    `json:"quantity" validate:"required,min=1"`
}
