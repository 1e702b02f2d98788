package repository

import (
	"context"
	"fmt"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RoomTypeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.RoomType, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.RoomType, error)
	Count(ctx context.Context) (int64, error)

	// RecomputeAvailableUnits re-derives the available-unit cache from the
	// reservation store in a single statement and returns the new value.
	RecomputeAvailableUnits(ctx context.Context, id uuid.UUID) (int, error)
}

type roomTypeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRoomTypeRepository(db database.PgxIface, log *zap.Logger) RoomTypeRepository {
	return &roomTypeRepository{
		db:  db,
		log: log.With(zap.String("repository", "room_type")),
	}
}

func (r *roomTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.RoomType, error) {
	query := `
		SELECT id, name, capacity, nightly_rate, total_units, available_units,
		       is_active, refundable, breakfast_included, check_in_time, check_out_time,
		       created_at, updated_at
		FROM room_types
		WHERE id = $1
	`

	var room entity.RoomType
	err := r.db.QueryRow(ctx, query, id).Scan(
		&room.ID,
		&room.Name,
		&room.Capacity,
		&room.NightlyRate,
		&room.TotalUnits,
		&room.AvailableUnits,
		&room.IsActive,
		&room.Refundable,
		&room.BreakfastIncluded,
		&room.CheckInTime,
		&room.CheckOutTime,
		&room.CreatedAt,
		&room.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find room type by ID",
			zap.Error(err),
			zap.String("room_type_id", id.String()),
		)
		return nil, fmt.Errorf("find room type by ID %s: %w", id.String(), err)
	}

	return &room, nil
}

func (r *roomTypeRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.RoomType, error) {
	query := `
		SELECT id, name, capacity, nightly_rate, total_units, available_units,
		       is_active, refundable, breakfast_included, check_in_time, check_out_time,
		       created_at, updated_at
		FROM room_types
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list room types",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list room types: %w", err)
	}
	defer rows.Close()

	var rooms []*entity.RoomType
	for rows.Next() {
		var room entity.RoomType
		err := rows.Scan(
			&room.ID,
			&room.Name,
			&room.Capacity,
			&room.NightlyRate,
			&room.TotalUnits,
			&room.AvailableUnits,
			&room.IsActive,
			&room.Refundable,
			&room.BreakfastIncluded,
			&room.CheckInTime,
			&room.CheckOutTime,
			&room.CreatedAt,
			&room.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan room type row", zap.Error(err))
			return nil, fmt.Errorf("scan room type row: %w", err)
		}
		rooms = append(rooms, &room)
	}

	return rooms, nil
}

func (r *roomTypeRepository) Count(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM room_types`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count room types", zap.Error(err))
		return 0, fmt.Errorf("count room types: %w", err)
	}

	return count, nil
}

func (r *roomTypeRepository) RecomputeAvailableUnits(ctx context.Context, id uuid.UUID) (int, error) {
	// Full recomputation instead of incrementing counters: the cache stays a
	// pure function of the reservation store, so repeating this statement
	// after a crash always converges to the correct value.
	query := `
		UPDATE room_types
		SET available_units = GREATEST(0, total_units - COALESCE((
			SELECT SUM(quantity)
			FROM reservations
			WHERE room_type_id = room_types.id
			  AND status NOT IN ('cancelled', 'no_show')
			  AND check_out_date > CURRENT_DATE
		), 0)),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING available_units
	`

	var available int
	err := r.db.QueryRow(ctx, query, id).Scan(&available)
	if err == pgx.ErrNoRows {
		return 0, fmt.Errorf("room type %s not found", id.String())
	}
	if err != nil {
		r.log.Error("Failed to recompute available units",
			zap.Error(err),
			zap.String("room_type_id", id.String()),
		)
		return 0, fmt.Errorf("recompute available units for room type %s: %w", id.String(), err)
	}

	return available, nil
}
