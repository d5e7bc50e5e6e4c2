package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/timetable-api/internal/models"
)

func newCourseSectionRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func sectionRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "section_id", "schedule_id", "code", "title", "instructor", "duration_hours", "capacity", "is_online", "color", "created_at", "updated_at"})
}

func TestCourseSectionRepositoryListBySchedule(t *testing.T) {
	db, mock, cleanup := newCourseSectionRepoMock(t)
	defer cleanup()
	repo := NewCourseSectionRepository(db)

	rows := sectionRows().
		AddRow(1, 11, 7, "CS101", "Intro to CS", "A Smith", 1.0, 30, false, "#ff0000", time.Now(), time.Now())
	mock.ExpectQuery("SELECT .+ FROM course_sections WHERE schedule_id = \\$1 ORDER BY code ASC").
		WithArgs(int64(7)).
		WillReturnRows(rows)

	sections, err := repo.ListBySchedule(context.Background(), models.CourseSectionFilter{ScheduleID: 7})
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "CS101", sections[0].Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseSectionRepositoryListByScheduleWithFilters(t *testing.T) {
	db, mock, cleanup := newCourseSectionRepoMock(t)
	defer cleanup()
	repo := NewCourseSectionRepository(db)

	online := true
	mock.ExpectQuery("SELECT .+ FROM course_sections WHERE schedule_id = \\$1 AND \\(code ILIKE \\$2 OR title ILIKE \\$2\\) AND is_online = \\$3").
		WithArgs(int64(7), "%CS%", true).
		WillReturnRows(sectionRows())

	_, err := repo.ListBySchedule(context.Background(), models.CourseSectionFilter{
		ScheduleID: 7,
		Search:     "CS",
		IsOnline:   &online,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseSectionRepositorySplitDuration(t *testing.T) {
	db, mock, cleanup := newCourseSectionRepoMock(t)
	defer cleanup()
	repo := NewCourseSectionRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE course_sections SET duration_hours = \\$1").
		WithArgs(2.0, int64(1)).
		WillReturnRows(sectionRows().AddRow(1, 11, 7, "CS101", "Intro to CS", "A Smith", 2.0, 30, false, "#ff0000", time.Now(), time.Now()))
	mock.ExpectExec("UPDATE assignments SET separated_duration = \\$1").
		WithArgs(2.0, int64(1), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO course_sections").
		WithArgs(int64(11), int64(7), "CS101", "Intro to CS", "A Smith", 1.0, 30, false, "#ff0000").
		WillReturnRows(sectionRows().AddRow(2, 11, 7, "CS101", "Intro to CS", "A Smith", 1.0, 30, false, "#ff0000", time.Now(), time.Now()))
	mock.ExpectExec("INSERT INTO assignments").
		WithArgs(int64(7), int64(2), false, 1.0).
		WillReturnResult(sqlmock.NewResult(4, 1))
	mock.ExpectCommit()

	parts, err := repo.SplitDuration(context.Background(), 1, []float64{2.0, 1.0})
	require.NoError(t, err)
	require.Len(t, parts, 2)
	assert.Equal(t, 2.0, parts[0].DurationHours)
	assert.Equal(t, 1.0, parts[1].DurationHours)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseSectionRepositorySplitDurationRejectsSingle(t *testing.T) {
	db, _, cleanup := newCourseSectionRepoMock(t)
	defer cleanup()
	repo := NewCourseSectionRepository(db)

	_, err := repo.SplitDuration(context.Background(), 1, []float64{3.0})
	require.Error(t, err)
}
