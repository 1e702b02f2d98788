package repository

import (
	"context"
	"fmt"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReservationExtraRepository interface {
	CreateBatch(ctx context.Context, extras []*entity.ReservationExtra) error
	FindByReservationID(ctx context.Context, reservationID uuid.UUID) ([]*entity.ReservationExtra, error)
	DeleteByReservationID(ctx context.Context, reservationID uuid.UUID) error
}

type reservationExtraRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationExtraRepository(db database.PgxIface, log *zap.Logger) ReservationExtraRepository {
	return &reservationExtraRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation_extra")),
	}
}

func (r *reservationExtraRepository) CreateBatch(ctx context.Context, extras []*entity.ReservationExtra) error {
	if len(extras) == 0 {
		return nil
	}

	query := `
		INSERT INTO reservation_extras (id, reservation_id, name, unit_price, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, extra := range extras {
		_, err := r.db.Exec(ctx, query,
			extra.ID,
			extra.ReservationID,
			extra.Name,
			extra.UnitPrice,
			extra.Quantity,
			extra.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to create reservation extra",
				zap.Error(err),
				zap.String("reservation_id", extra.ReservationID.String()),
				zap.String("name", extra.Name),
			)
			return fmt.Errorf("create reservation extra %s: %w", extra.Name, err)
		}
	}

	return nil
}

func (r *reservationExtraRepository) FindByReservationID(ctx context.Context, reservationID uuid.UUID) ([]*entity.ReservationExtra, error) {
	query := `
		SELECT id, reservation_id, name, unit_price, quantity, created_at
		FROM reservation_extras
		WHERE reservation_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, reservationID)
	if err != nil {
		r.log.Error("Failed to find extras by reservation ID",
			zap.Error(err),
			zap.String("reservation_id", reservationID.String()),
		)
		return nil, fmt.Errorf("find extras by reservation ID %s: %w", reservationID.String(), err)
	}
	defer rows.Close()

	var extras []*entity.ReservationExtra
	for rows.Next() {
		var extra entity.ReservationExtra
		err := rows.Scan(
			&extra.ID,
			&extra.ReservationID,
			&extra.Name,
			&extra.UnitPrice,
			&extra.Quantity,
			&extra.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan reservation extra row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation extra row: %w", err)
		}
		extras = append(extras, &extra)
	}

	return extras, nil
}

func (r *reservationExtraRepository) DeleteByReservationID(ctx context.Context, reservationID uuid.UUID) error {
	query := `DELETE FROM reservation_extras WHERE reservation_id = $1`

	_, err := r.db.Exec(ctx, query, reservationID)
	if err != nil {
		r.log.Error("Failed to delete extras by reservation ID",
			zap.Error(err),
			zap.String("reservation_id", reservationID.String()),
		)
		return fmt.Errorf("delete extras for reservation %s: %w", reservationID.String(), err)
	}

	return nil
}
