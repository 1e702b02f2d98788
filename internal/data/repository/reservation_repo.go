package repository

import (
	"context"
	"fmt"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	FindByCode(ctx context.Context, code string) (*entity.Reservation, error)
	FindByRoomTypeID(ctx context.Context, roomTypeID uuid.UUID, limit, offset int) ([]*entity.Reservation, error)
	CountByRoomTypeID(ctx context.Context, roomTypeID uuid.UUID) (int64, error)
	Update(ctx context.Context, reservation *entity.Reservation) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReservationStatus, updatedBy string) error
	Delete(ctx context.Context, id uuid.UUID) error

	// SumOverlappingQuantity sums quantity over active reservations whose
	// interval overlaps [checkIn, checkOut). Pass excludeID to leave one
	// reservation out of the sum when re-checking an amendment.
	SumOverlappingQuantity(ctx context.Context, roomTypeID uuid.UUID, checkIn, checkOut time.Time, excludeID *uuid.UUID) (int, error)
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

const reservationColumns = `
	id, code, room_type_id, check_in_date, check_out_date, nights, quantity,
	guest_count, guest_name, guest_email, guest_phone, additional_guests,
	nightly_rate, discount_type, discount_value, base_amount, extras_amount,
	discount_amount, tax_rate, tax_amount, total_amount, payment_method,
	status, created_by, updated_by, created_at, updated_at`

func scanReservation(row pgx.Row) (*entity.Reservation, error) {
	var res entity.Reservation
	err := row.Scan(
		&res.ID,
		&res.Code,
		&res.RoomTypeID,
		&res.CheckInDate,
		&res.CheckOutDate,
		&res.Nights,
		&res.Quantity,
		&res.GuestCount,
		&res.GuestName,
		&res.GuestEmail,
		&res.GuestPhone,
		&res.AdditionalGuests,
		&res.NightlyRate,
		&res.DiscountType,
		&res.DiscountValue,
		&res.BaseAmount,
		&res.ExtrasAmount,
		&res.DiscountAmount,
		&res.TaxRate,
		&res.TaxAmount,
		&res.TotalAmount,
		&res.PaymentMethod,
		&res.Status,
		&res.CreatedBy,
		&res.UpdatedBy,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *reservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		INSERT INTO reservations (` + reservationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)
	`

	_, err := r.db.Exec(ctx, query,
		reservation.ID,
		reservation.Code,
		reservation.RoomTypeID,
		reservation.CheckInDate,
		reservation.CheckOutDate,
		reservation.Nights,
		reservation.Quantity,
		reservation.GuestCount,
		reservation.GuestName,
		reservation.GuestEmail,
		reservation.GuestPhone,
		reservation.AdditionalGuests,
		reservation.NightlyRate,
		reservation.DiscountType,
		reservation.DiscountValue,
		reservation.BaseAmount,
		reservation.ExtrasAmount,
		reservation.DiscountAmount,
		reservation.TaxRate,
		reservation.TaxAmount,
		reservation.TotalAmount,
		reservation.PaymentMethod,
		reservation.Status,
		reservation.CreatedBy,
		reservation.UpdatedBy,
		reservation.CreatedAt,
		reservation.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("code", reservation.Code),
			zap.String("room_type_id", reservation.RoomTypeID.String()),
		)
		return fmt.Errorf("create reservation %s: %w", reservation.Code, err)
	}

	return nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	res, err := scanReservation(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by ID",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return nil, fmt.Errorf("find reservation by ID %s: %w", id.String(), err)
	}

	return res, nil
}

func (r *reservationRepository) FindByCode(ctx context.Context, code string) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE code = $1`

	res, err := scanReservation(r.db.QueryRow(ctx, query, code))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by code",
			zap.Error(err),
			zap.String("code", code),
		)
		return nil, fmt.Errorf("find reservation by code %s: %w", code, err)
	}

	return res, nil
}

func (r *reservationRepository) FindByRoomTypeID(ctx context.Context, roomTypeID uuid.UUID, limit, offset int) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE room_type_id = $1
		ORDER BY check_in_date DESC, created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, roomTypeID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reservations by room type ID",
			zap.Error(err),
			zap.String("room_type_id", roomTypeID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find reservations by room type ID %s: %w", roomTypeID.String(), err)
	}
	defer rows.Close()

	var reservations []*entity.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			r.log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, res)
	}

	return reservations, nil
}

func (r *reservationRepository) CountByRoomTypeID(ctx context.Context, roomTypeID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM reservations WHERE room_type_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, roomTypeID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count reservations by room type ID",
			zap.Error(err),
			zap.String("room_type_id", roomTypeID.String()),
		)
		return 0, fmt.Errorf("count reservations by room type ID %s: %w", roomTypeID.String(), err)
	}

	return count, nil
}

func (r *reservationRepository) Update(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		UPDATE reservations
		SET check_in_date = $2, check_out_date = $3, nights = $4, quantity = $5,
		    guest_count = $6, guest_name = $7, guest_email = $8, guest_phone = $9,
		    additional_guests = $10, discount_type = $11, discount_value = $12,
		    base_amount = $13, extras_amount = $14, discount_amount = $15,
		    tax_rate = $16, tax_amount = $17, total_amount = $18,
		    payment_method = $19, status = $20, updated_by = $21, updated_at = $22
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		reservation.ID,
		reservation.CheckInDate,
		reservation.CheckOutDate,
		reservation.Nights,
		reservation.Quantity,
		reservation.GuestCount,
		reservation.GuestName,
		reservation.GuestEmail,
		reservation.GuestPhone,
		reservation.AdditionalGuests,
		reservation.DiscountType,
		reservation.DiscountValue,
		reservation.BaseAmount,
		reservation.ExtrasAmount,
		reservation.DiscountAmount,
		reservation.TaxRate,
		reservation.TaxAmount,
		reservation.TotalAmount,
		reservation.PaymentMethod,
		reservation.Status,
		reservation.UpdatedBy,
		reservation.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update reservation",
			zap.Error(err),
			zap.String("reservation_id", reservation.ID.String()),
		)
		return fmt.Errorf("update reservation %s: %w", reservation.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reservation %s not found", reservation.ID.String())
	}

	return nil
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReservationStatus, updatedBy string) error {
	query := `UPDATE reservations SET status = $2, updated_by = $3, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status, updatedBy)
	if err != nil {
		r.log.Error("Failed to update reservation status",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update reservation %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reservation %s not found", id.String())
	}

	return nil
}

func (r *reservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM reservations WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete reservation",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return fmt.Errorf("delete reservation %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reservation %s not found", id.String())
	}

	r.log.Info("Reservation deleted", zap.String("reservation_id", id.String()))
	return nil
}

func (r *reservationRepository) SumOverlappingQuantity(ctx context.Context, roomTypeID uuid.UUID, checkIn, checkOut time.Time, excludeID *uuid.UUID) (int, error) {
	// Half-open interval overlap: [a, b) and [c, d) overlap iff a < d && c < b.
	// Back-to-back stays (checkout == next check-in) never match.
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM reservations
		WHERE room_type_id = $1
		  AND status NOT IN ('cancelled', 'no_show')
		  AND check_in_date < $3
		  AND $2 < check_out_date
		  AND ($4::uuid IS NULL OR id <> $4)
	`

	var total int
	err := r.db.QueryRow(ctx, query, roomTypeID, checkIn, checkOut, excludeID).Scan(&total)
	if err != nil {
		r.log.Error("Failed to sum overlapping reservation quantity",
			zap.Error(err),
			zap.String("room_type_id", roomTypeID.String()),
			zap.Time("check_in", checkIn),
			zap.Time("check_out", checkOut),
		)
		return 0, fmt.Errorf("sum overlapping quantity for room type %s: %w", roomTypeID.String(), err)
	}

	return total, nil
}
