package usecase

import (
	"context"
	"fmt"
	"time"

	"hotel-booking/internal/data/cache"
	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"
	"hotel-booking/internal/queue"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.ReservationResponse, error)
	GetBooking(ctx context.Context, reservationID string) (*response.ReservationResponse, error)
	ListRoomBookings(ctx context.Context, roomTypeID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationResponse], error)
	AmendBooking(ctx context.Context, reservationID string, req *request.AmendBookingRequest) (*response.ReservationResponse, error)
	TransitionStatus(ctx context.Context, reservationID string, newStatus string) (*response.ReservationResponse, error)
	CancelBooking(ctx context.Context, reservationID string) (*response.ReservationResponse, error)

	// DeleteBooking removes the reservation entirely. Privileged escape
	// hatch; capacity held by the reservation is returned to the pool.
	DeleteBooking(ctx context.Context, reservationID string) error
}

type bookingService struct {
	repo         *repository.Repository
	availability AvailabilityService
	cache        cache.AvailabilityCache
	publisher    queue.Publisher
	locker       *roomLocker
	taxRate      float64
	log          *zap.Logger
	now          func() time.Time
}

func NewBookingService(
	repo *repository.Repository,
	availability AvailabilityService,
	availCache cache.AvailabilityCache,
	publisher queue.Publisher,
	config *utils.Config,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		repo:         repo,
		availability: availability,
		cache:        availCache,
		publisher:    publisher,
		locker:       newRoomLocker(),
		taxRate:      config.Booking.TaxRate,
		log:          log.With(zap.String("service", "booking")),
		now:          time.Now,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.ReservationResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	roomUUID, err := uuid.Parse(req.RoomTypeID)
	if err != nil {
		return nil, fmt.Errorf("invalid room type ID format %s: %w", req.RoomTypeID, ErrNotFound)
	}

	checkIn, checkOut, nights, err := s.parseDateRange(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, err
	}

	room, err := s.repo.RoomType.FindByID(ctx, roomUUID)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	if room == nil {
		return nil, fmt.Errorf("room type %s: %w", req.RoomTypeID, ErrNotFound)
	}
	if !room.IsActive {
		return nil, fmt.Errorf("room type %s: %w", req.RoomTypeID, ErrRoomInactive)
	}

	if req.GuestCount > room.Capacity*req.Quantity {
		return nil, fmt.Errorf("%d guests exceed capacity %d x %d units: %w",
			req.GuestCount, room.Capacity, req.Quantity, ErrGuestCountExceeded)
	}

	discountType, discountValue := discountFromRequest(req.Discount)

	pricedExtras := make([]PricedExtra, len(req.Extras))
	for i, extra := range req.Extras {
		pricedExtras[i] = PricedExtra{UnitPrice: extra.UnitPrice, Quantity: extra.Quantity}
	}

	breakdown, err := Quote(PricingInput{
		NightlyRate:   room.NightlyRate,
		Nights:        nights,
		Quantity:      req.Quantity,
		Extras:        pricedExtras,
		DiscountType:  discountType,
		DiscountValue: discountValue,
		TaxRate:       s.taxRate,
	})
	if err != nil {
		return nil, fmt.Errorf("price booking: %w", err)
	}

	actor := actorOrSystem(ctx)
	status := entity.ReservationStatusPending
	if req.Confirm {
		status = entity.ReservationStatusConfirmed
	}

	now := s.now()
	reservation := &entity.Reservation{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Code:             utils.GenerateBookingCode(),
		RoomTypeID:       roomUUID,
		CheckInDate:      checkIn,
		CheckOutDate:     checkOut,
		Nights:           nights,
		Quantity:         req.Quantity,
		GuestCount:       req.GuestCount,
		GuestName:        req.GuestName,
		GuestEmail:       req.GuestEmail,
		GuestPhone:       req.GuestPhone,
		AdditionalGuests: req.AdditionalGuests,
		NightlyRate:      room.NightlyRate,
		DiscountType:     discountType,
		DiscountValue:    discountValue,
		BaseAmount:       breakdown.BaseAmount,
		ExtrasAmount:     breakdown.ExtrasAmount,
		DiscountAmount:   breakdown.DiscountAmount,
		TaxRate:          s.taxRate,
		TaxAmount:        breakdown.TaxAmount,
		TotalAmount:      breakdown.TotalAmount,
		PaymentMethod:    req.PaymentMethod,
		Status:           status,
		CreatedBy:        actor,
		UpdatedBy:        actor,
	}

	// Availability check and write must be serialized per room type: without
	// the lock two creations could both observe the last free unit.
	unlock := s.locker.Lock(roomUUID)
	defer unlock()

	freeUnits, err := s.availability.FreeUnits(ctx, room, checkIn, checkOut, nil)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	if freeUnits < req.Quantity {
		return nil, fmt.Errorf("requested %d units, %d free for %s to %s: %w",
			req.Quantity, freeUnits, req.CheckInDate, req.CheckOutDate, ErrCapacityExceeded)
	}

	if err := s.repo.Reservation.Create(ctx, reservation); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	extras := make([]*entity.ReservationExtra, len(req.Extras))
	for i, extra := range req.Extras {
		extras[i] = &entity.ReservationExtra{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			ReservationID: reservation.ID,
			Name:          extra.Name,
			UnitPrice:     extra.UnitPrice,
			Quantity:      extra.Quantity,
		}
	}

	if err := s.repo.ReservationExtra.CreateBatch(ctx, extras); err != nil {
		// Rollback: remove the bare reservation
		if delErr := s.repo.Reservation.Delete(ctx, reservation.ID); delErr != nil {
			s.log.Error("Rollback of reservation without extras failed",
				zap.Error(delErr),
				zap.String("reservation_id", reservation.ID.String()),
				zap.String("code", reservation.Code),
			)
		}
		return nil, fmt.Errorf("create booking extras: %w", err)
	}

	s.refreshInventory(ctx, roomUUID)

	s.log.Info("Booking created",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("code", reservation.Code),
		zap.String("room_type_id", req.RoomTypeID),
		zap.String("check_in", req.CheckInDate),
		zap.String("check_out", req.CheckOutDate),
		zap.Int("quantity", req.Quantity),
		zap.Float64("total_amount", reservation.TotalAmount),
		zap.String("status", string(status)),
	)

	s.publishEvent(ctx, queue.EventReservationCreated, reservation)

	resp := response.ReservationToResponse(reservation, extras, room.Name)
	return &resp, nil
}

func (s *bookingService) GetBooking(ctx context.Context, reservationID string) (*response.ReservationResponse, error) {
	reservation, err := s.findReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	return s.buildResponse(ctx, reservation), nil
}

func (s *bookingService) ListRoomBookings(ctx context.Context, roomTypeID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationResponse], error) {
	roomUUID, err := uuid.Parse(roomTypeID)
	if err != nil {
		return nil, fmt.Errorf("invalid room type ID format %s: %w", roomTypeID, ErrNotFound)
	}

	room, err := s.repo.RoomType.FindByID(ctx, roomUUID)
	if err != nil {
		return nil, fmt.Errorf("list room bookings: %w", err)
	}
	if room == nil {
		return nil, fmt.Errorf("room type %s: %w", roomTypeID, ErrNotFound)
	}

	reservations, err := s.repo.Reservation.FindByRoomTypeID(ctx, roomUUID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list room bookings: %w", err)
	}

	total, err := s.repo.Reservation.CountByRoomTypeID(ctx, roomUUID)
	if err != nil {
		return nil, fmt.Errorf("count room bookings: %w", err)
	}

	responses := make([]response.ReservationResponse, len(reservations))
	for i, reservation := range reservations {
		extras, _ := s.repo.ReservationExtra.FindByReservationID(ctx, reservation.ID)
		responses[i] = response.ReservationToResponse(reservation, extras, room.Name)
	}

	return response.NewPaginatedResponse(responses, req.Page, req.PerPage, total), nil
}

func (s *bookingService) AmendBooking(ctx context.Context, reservationID string, req *request.AmendBookingRequest) (*response.ReservationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Amend booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	reservation, err := s.findReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	// The first read only locates the room. State checks, repricing and the
	// capacity re-check all run on the row as it is under the lock, so a
	// transition that lands concurrently is never overwritten.
	unlock := s.locker.Lock(reservation.RoomTypeID)
	defer unlock()

	reservation, err = s.findReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if reservation.Status.IsTerminal() {
		return nil, fmt.Errorf("reservation %s is %s: %w", reservationID, reservation.Status, ErrAlreadyTerminal)
	}
	if reservation.Status != entity.ReservationStatusPending && reservation.Status != entity.ReservationStatusConfirmed {
		return nil, fmt.Errorf("cannot amend reservation in status %s: %w", reservation.Status, ErrInvalidTransition)
	}

	room, err := s.repo.RoomType.FindByID(ctx, reservation.RoomTypeID)
	if err != nil {
		return nil, fmt.Errorf("amend booking: %w", err)
	}
	if room == nil {
		return nil, fmt.Errorf("room type %s: %w", reservation.RoomTypeID.String(), ErrNotFound)
	}

	// Apply requested changes to a copy; nothing is written until the
	// capacity re-check passes.
	amended := *reservation
	checkInStr := amended.CheckInDate.Format("2006-01-02")
	checkOutStr := amended.CheckOutDate.Format("2006-01-02")
	if req.CheckInDate != nil {
		checkInStr = *req.CheckInDate
	}
	if req.CheckOutDate != nil {
		checkOutStr = *req.CheckOutDate
	}

	checkIn, checkOut, nights, err := s.parseDateRange(checkInStr, checkOutStr)
	if err != nil {
		return nil, err
	}
	amended.CheckInDate = checkIn
	amended.CheckOutDate = checkOut
	amended.Nights = nights

	if req.Quantity != nil {
		amended.Quantity = *req.Quantity
	}
	if req.GuestCount != nil {
		amended.GuestCount = *req.GuestCount
	}

	if amended.GuestCount > room.Capacity*amended.Quantity {
		return nil, fmt.Errorf("%d guests exceed capacity %d x %d units: %w",
			amended.GuestCount, room.Capacity, amended.Quantity, ErrGuestCountExceeded)
	}

	extras, err := s.repo.ReservationExtra.FindByReservationID(ctx, reservation.ID)
	if err != nil {
		return nil, fmt.Errorf("amend booking: %w", err)
	}
	pricedExtras := make([]PricedExtra, len(extras))
	for i, extra := range extras {
		pricedExtras[i] = PricedExtra{UnitPrice: extra.UnitPrice, Quantity: extra.Quantity}
	}

	// Reprice with the rate snapshot taken at creation; a room rate change
	// after booking never leaks into an amended price.
	breakdown, err := Quote(PricingInput{
		NightlyRate:   reservation.NightlyRate,
		Nights:        nights,
		Quantity:      amended.Quantity,
		Extras:        pricedExtras,
		DiscountType:  reservation.DiscountType,
		DiscountValue: reservation.DiscountValue,
		TaxRate:       reservation.TaxRate,
	})
	if err != nil {
		return nil, fmt.Errorf("reprice booking: %w", err)
	}
	amended.BaseAmount = breakdown.BaseAmount
	amended.ExtrasAmount = breakdown.ExtrasAmount
	amended.DiscountAmount = breakdown.DiscountAmount
	amended.TaxAmount = breakdown.TaxAmount
	amended.TotalAmount = breakdown.TotalAmount
	amended.UpdatedBy = actorOrSystem(ctx)
	amended.UpdatedAt = s.now()

	// Exclude this reservation from the overlap sum so it does not appear
	// to conflict with itself.
	excludeID := reservation.ID
	freeUnits, err := s.availability.FreeUnits(ctx, room, checkIn, checkOut, &excludeID)
	if err != nil {
		return nil, fmt.Errorf("amend booking: %w", err)
	}
	if freeUnits < amended.Quantity {
		return nil, fmt.Errorf("requested %d units, %d free for %s to %s: %w",
			amended.Quantity, freeUnits, checkInStr, checkOutStr, ErrCapacityExceeded)
	}

	if err := s.repo.Reservation.Update(ctx, &amended); err != nil {
		return nil, fmt.Errorf("amend booking: %w", err)
	}

	s.refreshInventory(ctx, reservation.RoomTypeID)

	s.log.Info("Booking amended",
		zap.String("reservation_id", reservationID),
		zap.String("code", reservation.Code),
		zap.String("check_in", checkInStr),
		zap.String("check_out", checkOutStr),
		zap.Int("quantity", amended.Quantity),
		zap.Float64("total_amount", amended.TotalAmount),
	)

	s.publishEvent(ctx, queue.EventReservationAmended, &amended)

	resp := response.ReservationToResponse(&amended, extras, room.Name)
	return &resp, nil
}

func (s *bookingService) TransitionStatus(ctx context.Context, reservationID string, newStatus string) (*response.ReservationResponse, error) {
	status := entity.ReservationStatus(newStatus)
	if !entity.IsValidStatus(status) {
		return nil, fmt.Errorf("unknown status %q: %w", newStatus, ErrInvalidTransition)
	}

	return s.applyTransition(ctx, reservationID, status, nil)
}

func (s *bookingService) CancelBooking(ctx context.Context, reservationID string) (*response.ReservationResponse, error) {
	return s.applyTransition(ctx, reservationID, entity.ReservationStatusCancelled,
		func(reservation *entity.Reservation) error {
			if reservation.Status.IsTerminal() {
				return fmt.Errorf("reservation %s is %s: %w", reservationID, reservation.Status, ErrAlreadyTerminal)
			}
			if reservation.Status == entity.ReservationStatusCheckedIn {
				return fmt.Errorf("reservation %s is checked in, cannot cancel: %w", reservationID, ErrInvalidTransition)
			}
			return nil
		})
}

// applyTransition moves the reservation to status under the room lock. The
// transition-table check runs on the row as it is inside the critical
// section: a transition that landed concurrently is observed and refused,
// never overwritten. The optional guard adds caller-specific refusals on the
// same locked read.
func (s *bookingService) applyTransition(
	ctx context.Context,
	reservationID string,
	status entity.ReservationStatus,
	guard func(*entity.Reservation) error,
) (*response.ReservationResponse, error) {
	reservation, err := s.findReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	unlock := s.locker.Lock(reservation.RoomTypeID)
	defer unlock()

	// The first read only located the room
	reservation, err = s.findReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if guard != nil {
		if err := guard(reservation); err != nil {
			return nil, err
		}
	}

	if !entity.CanTransition(reservation.Status, status) {
		return nil, fmt.Errorf("cannot transition reservation %s from %s to %s: %w",
			reservationID, reservation.Status, status, ErrInvalidTransition)
	}

	actor := actorOrSystem(ctx)
	wasActive := reservation.Status.IsActive()

	if err := s.repo.Reservation.UpdateStatus(ctx, reservation.ID, status, actor); err != nil {
		return nil, fmt.Errorf("transition status: %w", err)
	}

	reservation.Status = status
	reservation.UpdatedBy = actor
	reservation.UpdatedAt = s.now()

	// Leaving the active set returns units to the pool
	if wasActive && !status.IsActive() {
		s.refreshInventory(ctx, reservation.RoomTypeID)
	}

	s.log.Info("Booking status changed",
		zap.String("reservation_id", reservationID),
		zap.String("code", reservation.Code),
		zap.String("status", string(status)),
	)

	eventType := queue.EventReservationStatusChanged
	if status == entity.ReservationStatusCancelled {
		eventType = queue.EventReservationCancelled
	}
	s.publishEvent(ctx, eventType, reservation)

	return s.buildResponse(ctx, reservation), nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, reservationID string) error {
	reservation, err := s.findReservation(ctx, reservationID)
	if err != nil {
		return err
	}

	unlock := s.locker.Lock(reservation.RoomTypeID)
	defer unlock()

	if err := s.repo.ReservationExtra.DeleteByReservationID(ctx, reservation.ID); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	if err := s.repo.Reservation.Delete(ctx, reservation.ID); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}

	// A deleted active reservation must not silently keep units held
	if reservation.Status.IsActive() {
		s.refreshInventory(ctx, reservation.RoomTypeID)
	}

	s.log.Info("Booking deleted",
		zap.String("reservation_id", reservationID),
		zap.String("code", reservation.Code),
		zap.String("status", string(reservation.Status)),
	)

	s.publishEvent(ctx, queue.EventReservationDeleted, reservation)

	return nil
}

// ==================== HELPER METHODS ====================

func (s *bookingService) findReservation(ctx context.Context, reservationID string) (*entity.Reservation, error) {
	id, err := uuid.Parse(reservationID)
	if err != nil {
		// A malformed ID cannot name an existing reservation
		return nil, fmt.Errorf("invalid reservation ID format %s: %w", reservationID, ErrNotFound)
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find reservation: %w", err)
	}
	if reservation == nil {
		return nil, fmt.Errorf("reservation %s: %w", reservationID, ErrNotFound)
	}

	return reservation, nil
}

// parseDateRange parses and validates a hotel-night interval. The range is
// half-open: the checkout day is not occupied.
func (s *bookingService) parseDateRange(checkInStr, checkOutStr string) (checkIn, checkOut time.Time, nights int, err error) {
	checkIn, err = time.Parse("2006-01-02", checkInStr)
	if err != nil {
		return time.Time{}, time.Time{}, 0, fmt.Errorf("invalid check-in date %s: %w", checkInStr, ErrInvalidDateRange)
	}
	checkOut, err = time.Parse("2006-01-02", checkOutStr)
	if err != nil {
		return time.Time{}, time.Time{}, 0, fmt.Errorf("invalid check-out date %s: %w", checkOutStr, ErrInvalidDateRange)
	}

	if !checkOut.After(checkIn) {
		return time.Time{}, time.Time{}, 0, fmt.Errorf("check-out %s must be after check-in %s: %w", checkOutStr, checkInStr, ErrInvalidDateRange)
	}

	today := s.now().UTC().Truncate(24 * time.Hour)
	if checkIn.Before(today) {
		return time.Time{}, time.Time{}, 0, fmt.Errorf("check-in %s is in the past: %w", checkInStr, ErrInvalidDateRange)
	}

	nights = int(checkOut.Sub(checkIn).Hours() / 24)
	return checkIn, checkOut, nights, nil
}

// refreshInventory recomputes the room's available-unit cache and drops stale
// availability cache entries. The recomputation is idempotent; a failure here
// never rolls back the reservation write, re-running it converges.
func (s *bookingService) refreshInventory(ctx context.Context, roomTypeID uuid.UUID) {
	if _, err := s.repo.RoomType.RecomputeAvailableUnits(ctx, roomTypeID); err != nil {
		s.log.Error("Inventory recomputation failed, retry via admin recompute endpoint",
			zap.Error(err),
			zap.String("room_type_id", roomTypeID.String()),
		)
	}
	s.cache.InvalidateRoom(ctx, roomTypeID)
}

func (s *bookingService) publishEvent(ctx context.Context, eventType queue.EventType, reservation *entity.Reservation) {
	event := queue.ReservationEvent{
		Type:          eventType,
		ReservationID: reservation.ID.String(),
		Code:          reservation.Code,
		RoomTypeID:    reservation.RoomTypeID.String(),
		Status:        string(reservation.Status),
		CheckInDate:   reservation.CheckInDate.Format("2006-01-02"),
		CheckOutDate:  reservation.CheckOutDate.Format("2006-01-02"),
		Quantity:      reservation.Quantity,
		GuestName:     reservation.GuestName,
		TotalAmount:   reservation.TotalAmount,
		OccurredAt:    s.now().UTC().Format(time.RFC3339),
	}

	// Best effort; the publisher logs its own failures
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("Reservation event not published",
			zap.String("type", string(eventType)),
			zap.String("reservation_id", reservation.ID.String()),
		)
	}
}

func (s *bookingService) buildResponse(ctx context.Context, reservation *entity.Reservation) *response.ReservationResponse {
	var roomName string
	room, _ := s.repo.RoomType.FindByID(ctx, reservation.RoomTypeID)
	if room != nil {
		roomName = room.Name
	}

	extras, _ := s.repo.ReservationExtra.FindByReservationID(ctx, reservation.ID)

	resp := response.ReservationToResponse(reservation, extras, roomName)
	return &resp
}

func discountFromRequest(discount *request.DiscountInput) (entity.DiscountType, float64) {
	if discount == nil {
		return entity.DiscountTypeNone, 0
	}
	return entity.DiscountType(discount.Type), discount.Value
}

func actorOrSystem(ctx context.Context) string {
	if actor, ok := utils.GetActorFromContext(ctx); ok {
		return actor
	}
	return "system"
}
