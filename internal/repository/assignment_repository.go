package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campushub/timetable-api/internal/models"
)

// AssignmentRepository persists the denormalized placement rows. One
// row exists per section; unplaced sections keep their row with NULL
// placement columns.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository creates a new assignment repository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

const assignmentColumns = `a.id, a.schedule_id, a.section_id, a.day, a.time_slot, a.end_time, a.classroom_id, a.is_online, a.separated_duration, c.capacity, c.color, c.code AS course_code, c.title AS course_title, c.instructor, a.updated_at`

// ListBySchedule returns every assignment row for a schedule, placed or
// not, joined with its section's descriptive fields.
func (r *AssignmentRepository) ListBySchedule(ctx context.Context, scheduleID int64) ([]models.AssignmentRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM assignments a JOIN course_sections c ON c.id = a.section_id WHERE a.schedule_id = $1 ORDER BY a.id ASC`, assignmentColumns)
	var records []models.AssignmentRecord
	if err := r.db.SelectContext(ctx, &records, query, scheduleID); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return records, nil
}

// ReplaceForSchedule writes a flattened save payload in one
// transaction. Every row for the schedule is first unplaced, then the
// rows present in the payload are re-placed; rows the payload omits
// stay unplaced. Storage has no notion of combination.
func (r *AssignmentRepository) ReplaceForSchedule(ctx context.Context, scheduleID int64, rows []models.SaveRow) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	const clearQuery = `UPDATE assignments SET day = NULL, time_slot = NULL, end_time = NULL, classroom_id = NULL, updated_at = NOW() WHERE schedule_id = $1`
	if _, err := tx.ExecContext(ctx, clearQuery, scheduleID); err != nil {
		return fmt.Errorf("clear assignments: %w", err)
	}

	const placeQuery = `UPDATE assignments SET day = $1, time_slot = $2, end_time = $3, classroom_id = $4, is_online = $5, separated_duration = $6, updated_at = NOW() WHERE id = $7 AND schedule_id = $8`
	for _, row := range rows {
		timeSlot := clockRange(row.StartTime, row.EndTime)
		res, err := tx.ExecContext(ctx, placeQuery, row.Day, timeSlot, row.EndTime, row.ClassroomID, row.IsOnline, row.Duration, row.ID, scheduleID)
		if err != nil {
			return fmt.Errorf("place assignment %d: %w", row.ID, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("place assignment %d: %w", row.ID, err)
		}
		if affected == 0 {
			return fmt.Errorf("assignment %d not found in schedule %d", row.ID, scheduleID)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// clockRange renders the stored time_slot token from start and end.
func clockRange(start, end *string) *string {
	if start == nil || end == nil {
		return nil
	}
	token := fmt.Sprintf("%s - %s", models.NormalizeClock(*start), models.NormalizeClock(*end))
	return &token
}
