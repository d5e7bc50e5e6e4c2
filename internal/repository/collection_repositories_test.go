package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestTimeSlotRepositoryListBySchedule(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTimeSlotRepository(db)

	rows := sqlmock.NewRows([]string{"id", "sequence", "start_time", "end_time", "created_at", "updated_at"}).
		AddRow(1, 1, "08:00", "09:00", time.Now(), time.Now()).
		AddRow(2, 2, "09:00", "10:30", time.Now(), time.Now())
	mock.ExpectQuery("SELECT .+ FROM time_slots WHERE schedule_id = \\$1 ORDER BY sequence ASC").
		WithArgs(int64(7)).
		WillReturnRows(rows)

	slots, err := repo.ListBySchedule(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "08:00 - 09:00", slots[0].Key())
	assert.InDelta(t, 1.5, slots[1].DurationHours(), 0.0001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassroomRepositoryListBySchedule(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassroomRepository(db)

	rows := sqlmock.NewRows([]string{"id", "code", "capacity", "created_at", "updated_at"}).
		AddRow(101, "R-101", 35, time.Now(), time.Now())
	mock.ExpectQuery("SELECT .+ FROM classrooms WHERE schedule_id = \\$1 ORDER BY code ASC").
		WithArgs(int64(7)).
		WillReturnRows(rows)

	rooms, err := repo.ListBySchedule(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.False(t, rooms[0].IsVirtual())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInstructorConstraintRepositoryListBySchedule(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewInstructorConstraintRepository(db)

	rows := sqlmock.NewRows([]string{"id", "schedule_id", "instructor", "day_of_the_week", "time_period"}).
		AddRow(1, 7, "A Smith", "Monday", pq.StringArray{"09:00 - 10:00", "13:00-15:00"})
	mock.ExpectQuery("SELECT .+ FROM instructor_constraints WHERE schedule_id = \\$1").
		WithArgs(int64(7)).
		WillReturnRows(rows)

	constraints, err := repo.ListBySchedule(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, constraints, 1)
	assert.Len(t, constraints[0].TimePeriod, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
