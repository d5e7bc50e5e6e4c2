package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/campushub/timetable-api/internal/models"
)

// CourseSectionRepository provides read access to a schedule's sections.
type CourseSectionRepository struct {
	db *sqlx.DB
}

// NewCourseSectionRepository creates a new course section repository.
func NewCourseSectionRepository(db *sqlx.DB) *CourseSectionRepository {
	return &CourseSectionRepository{db: db}
}

// ListBySchedule returns sections with optional filtering.
func (r *CourseSectionRepository) ListBySchedule(ctx context.Context, filter models.CourseSectionFilter) ([]models.CourseSection, error) {
	base := "SELECT id, section_id, schedule_id, code, title, instructor, duration_hours, capacity, is_online, color, created_at, updated_at FROM course_sections WHERE schedule_id = $1"
	args := []interface{}{filter.ScheduleID}
	var conditions []string

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(code ILIKE $%d OR title ILIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.Instructor != "" {
		conditions = append(conditions, fmt.Sprintf("instructor ILIKE $%d", len(args)+1))
		args = append(args, "%"+filter.Instructor+"%")
	}
	if filter.IsOnline != nil {
		conditions = append(conditions, fmt.Sprintf("is_online = $%d", len(args)+1))
		args = append(args, *filter.IsOnline)
	}

	query := base
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY code ASC, section_id ASC"

	var sections []models.CourseSection
	if err := r.db.SelectContext(ctx, &sections, query, args...); err != nil {
		return nil, fmt.Errorf("list course sections: %w", err)
	}
	return sections, nil
}

// FindByID loads a single section.
func (r *CourseSectionRepository) FindByID(ctx context.Context, id int64) (*models.CourseSection, error) {
	const query = `SELECT id, section_id, schedule_id, code, title, instructor, duration_hours, capacity, is_online, color, created_at, updated_at FROM course_sections WHERE id = $1`
	var section models.CourseSection
	if err := r.db.GetContext(ctx, &section, query, id); err != nil {
		return nil, err
	}
	return &section, nil
}

// SplitDuration rewrites a section's duration and inserts sibling
// sections covering the remainder, all in one transaction. The new
// siblings inherit every descriptive field of the original. Storage
// keeps one assignment row per section, so the head's row is reduced
// to its new duration and each sibling gets a fresh unplaced row.
func (r *CourseSectionRepository) SplitDuration(ctx context.Context, id int64, durations []float64) ([]models.CourseSection, error) {
	if len(durations) < 2 {
		return nil, fmt.Errorf("split requires at least two durations")
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin split: %w", err)
	}
	defer tx.Rollback()

	const updateQuery = `UPDATE course_sections SET duration_hours = $1, updated_at = NOW() WHERE id = $2 RETURNING id, section_id, schedule_id, code, title, instructor, duration_hours, capacity, is_online, color, created_at, updated_at`
	var head models.CourseSection
	if err := tx.GetContext(ctx, &head, updateQuery, durations[0], id); err != nil {
		return nil, fmt.Errorf("update split head: %w", err)
	}

	const headRowQuery = `UPDATE assignments SET separated_duration = $1, updated_at = NOW() WHERE section_id = $2 AND schedule_id = $3`
	if _, err := tx.ExecContext(ctx, headRowQuery, durations[0], head.ID, head.ScheduleID); err != nil {
		return nil, fmt.Errorf("update split head assignment: %w", err)
	}

	out := []models.CourseSection{head}
	const insertQuery = `INSERT INTO course_sections (section_id, schedule_id, code, title, instructor, duration_hours, capacity, is_online, color, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW()) RETURNING id, section_id, schedule_id, code, title, instructor, duration_hours, capacity, is_online, color, created_at, updated_at`
	const insertRowQuery = `INSERT INTO assignments (schedule_id, section_id, is_online, separated_duration, updated_at) VALUES ($1, $2, $3, $4, NOW())`
	for _, d := range durations[1:] {
		var part models.CourseSection
		if err := tx.GetContext(ctx, &part, insertQuery, head.SectionID, head.ScheduleID, head.Code, head.Title, head.Instructor, d, head.Capacity, head.IsOnline, head.Color); err != nil {
			return nil, fmt.Errorf("insert split part: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertRowQuery, part.ScheduleID, part.ID, part.IsOnline, d); err != nil {
			return nil, fmt.Errorf("insert split part assignment: %w", err)
		}
		out = append(out, part)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit split: %w", err)
	}
	return out, nil
}
