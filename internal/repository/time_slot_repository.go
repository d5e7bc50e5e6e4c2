package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campushub/timetable-api/internal/models"
)

// TimeSlotRepository provides read access to a schedule's slot sequence.
type TimeSlotRepository struct {
	db *sqlx.DB
}

// NewTimeSlotRepository creates a new time slot repository.
func NewTimeSlotRepository(db *sqlx.DB) *TimeSlotRepository {
	return &TimeSlotRepository{db: db}
}

// ListBySchedule returns the ordered slot sequence for a schedule.
func (r *TimeSlotRepository) ListBySchedule(ctx context.Context, scheduleID int64) ([]models.TimeSlot, error) {
	const query = `SELECT id, sequence, start_time, end_time, created_at, updated_at FROM time_slots WHERE schedule_id = $1 ORDER BY sequence ASC`
	var slots []models.TimeSlot
	if err := r.db.SelectContext(ctx, &slots, query, scheduleID); err != nil {
		return nil, fmt.Errorf("list time slots: %w", err)
	}
	return slots, nil
}
