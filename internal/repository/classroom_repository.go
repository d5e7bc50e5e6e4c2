package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campushub/timetable-api/internal/models"
)

// ClassroomRepository provides read access to a schedule's rooms.
// Virtual classrooms are not persisted; the service layer appends the
// fixed online pool to every listing.
type ClassroomRepository struct {
	db *sqlx.DB
}

// NewClassroomRepository creates a new classroom repository.
func NewClassroomRepository(db *sqlx.DB) *ClassroomRepository {
	return &ClassroomRepository{db: db}
}

// ListBySchedule returns the physical rooms attached to a schedule.
func (r *ClassroomRepository) ListBySchedule(ctx context.Context, scheduleID int64) ([]models.Classroom, error) {
	const query = `SELECT id, code, capacity, created_at, updated_at FROM classrooms WHERE schedule_id = $1 ORDER BY code ASC`
	var rooms []models.Classroom
	if err := r.db.SelectContext(ctx, &rooms, query, scheduleID); err != nil {
		return nil, fmt.Errorf("list classrooms: %w", err)
	}
	return rooms, nil
}
