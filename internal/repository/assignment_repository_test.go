package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/timetable-api/internal/models"
)

func newAssignmentRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestAssignmentRepositoryListBySchedule(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	day := "Monday"
	slot := "09:00 - 10:00"
	end := "10:00"
	room := int64(101)
	rows := sqlmock.NewRows([]string{"id", "schedule_id", "section_id", "day", "time_slot", "end_time", "classroom_id", "is_online", "separated_duration", "capacity", "color", "course_code", "course_title", "instructor", "updated_at"}).
		AddRow(1, 7, 11, day, slot, end, room, false, 1.0, 30, "#ff0000", "CS101", "Intro to CS", "A Smith", time.Now()).
		AddRow(2, 7, 12, nil, nil, nil, nil, true, 2.0, 40, "#00ff00", "CS102", "Data Structures", "B Jones", time.Now())
	mock.ExpectQuery("SELECT .+ FROM assignments a JOIN course_sections c ON c.id = a.section_id WHERE a.schedule_id = \\$1").
		WithArgs(int64(7)).
		WillReturnRows(rows)

	records, err := repo.ListBySchedule(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].IsPlaced())
	assert.Equal(t, "A Smith", records[0].Instructor)
	assert.False(t, records[1].IsPlaced())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryReplaceForSchedule(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	day := "Monday"
	start := "9:00"
	end := "10:00"
	room := int64(101)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE assignments SET day = NULL, time_slot = NULL, end_time = NULL, classroom_id = NULL, updated_at = NOW() WHERE schedule_id = $1")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE assignments SET day = $1, time_slot = $2, end_time = $3, classroom_id = $4, is_online = $5, separated_duration = $6, updated_at = NOW() WHERE id = $7 AND schedule_id = $8")).
		WithArgs(day, "09:00 - 10:00", end, room, false, 1.0, int64(1), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rows := []models.SaveRow{
		{ID: 1, SectionID: 11, Day: &day, StartTime: &start, EndTime: &end, ClassroomID: &room, IsOnline: false, Duration: 1.0},
	}
	require.NoError(t, repo.ReplaceForSchedule(context.Background(), 7, rows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryReplaceForScheduleUnknownRow(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE assignments SET day = NULL")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE assignments SET day = $1")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	rows := []models.SaveRow{{ID: 99, SectionID: 1}}
	err := repo.ReplaceForSchedule(context.Background(), 7, rows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assignment 99 not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}
