package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campushub/timetable-api/internal/models"
)

// InstructorConstraintRepository provides read access to declared
// instructor unavailability.
type InstructorConstraintRepository struct {
	db *sqlx.DB
}

// NewInstructorConstraintRepository creates a new constraint repository.
func NewInstructorConstraintRepository(db *sqlx.DB) *InstructorConstraintRepository {
	return &InstructorConstraintRepository{db: db}
}

// ListBySchedule returns all constraints declared for a schedule.
func (r *InstructorConstraintRepository) ListBySchedule(ctx context.Context, scheduleID int64) ([]models.InstructorConstraint, error) {
	const query = `SELECT id, schedule_id, instructor, day_of_the_week, time_period FROM instructor_constraints WHERE schedule_id = $1 ORDER BY instructor ASC, day_of_the_week ASC`
	var constraints []models.InstructorConstraint
	if err := r.db.SelectContext(ctx, &constraints, query, scheduleID); err != nil {
		return nil, fmt.Errorf("list instructor constraints: %w", err)
	}
	return constraints, nil
}
