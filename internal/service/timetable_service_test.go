package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/timetable-api/internal/dto"
	"github.com/campushub/timetable-api/internal/models"
	appErrors "github.com/campushub/timetable-api/pkg/errors"
)

type mockCollections struct {
	slots      []models.TimeSlot
	slotsErr   error
	fetchCount int
}

func (m *mockCollections) ListBySchedule(ctx context.Context, scheduleID int64) ([]models.TimeSlot, error) {
	m.fetchCount++
	if m.slotsErr != nil {
		return nil, m.slotsErr
	}
	return m.slots, nil
}

type mockRoomRepo struct{ rooms []models.Classroom }

func (m *mockRoomRepo) ListBySchedule(ctx context.Context, scheduleID int64) ([]models.Classroom, error) {
	return m.rooms, nil
}

type mockSectionRepo struct {
	sections    []models.CourseSection
	split       []float64
	assignments *mockAssignmentRepo
}

func (m *mockSectionRepo) ListBySchedule(ctx context.Context, filter models.CourseSectionFilter) ([]models.CourseSection, error) {
	return m.sections, nil
}

// SplitDuration mirrors the repository: siblings get fresh unplaced
// assignment rows when an assignment mock is attached.
func (m *mockSectionRepo) SplitDuration(ctx context.Context, id int64, durations []float64) ([]models.CourseSection, error) {
	m.split = durations
	head := m.sections[0]
	head.DurationHours = durations[0]
	parts := []models.CourseSection{head}
	for i, d := range durations[1:] {
		part := head
		part.ID = head.ID + int64(i) + 100
		part.DurationHours = d
		parts = append(parts, part)
		m.sections = append(m.sections, part)
		if m.assignments != nil {
			m.assignments.records = append(m.assignments.records, models.AssignmentRecord{
				ID:                int64(len(m.assignments.records) + 1),
				ScheduleID:        head.ScheduleID,
				SectionID:         part.ID,
				SeparatedDuration: d,
			})
		}
	}
	return parts, nil
}

type mockConstraintRepo struct{ constraints []models.InstructorConstraint }

func (m *mockConstraintRepo) ListBySchedule(ctx context.Context, scheduleID int64) ([]models.InstructorConstraint, error) {
	return m.constraints, nil
}

type mockAssignmentRepo struct {
	records []models.AssignmentRecord
	saved   []models.SaveRow
	saveErr error
}

func (m *mockAssignmentRepo) ListBySchedule(ctx context.Context, scheduleID int64) ([]models.AssignmentRecord, error) {
	return m.records, nil
}

func (m *mockAssignmentRepo) ReplaceForSchedule(ctx context.Context, scheduleID int64, rows []models.SaveRow) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = rows
	return nil
}

type recordingNotifier struct {
	levels   []string
	messages []string
}

func (n *recordingNotifier) Notify(level, message string) {
	n.levels = append(n.levels, level)
	n.messages = append(n.messages, message)
}

func newTestTimetable(t *testing.T) (*TimetableService, *mockCollections, *mockSectionRepo, *mockAssignmentRepo, *recordingNotifier) {
	t.Helper()
	slots := &mockCollections{slots: testSlots()}
	rooms := &mockRoomRepo{rooms: []models.Classroom{{ID: 101, Code: "R-101", Capacity: 35}, {ID: 102, Code: "R-102", Capacity: 50}}}
	sections := &mockSectionRepo{sections: []models.CourseSection{
		testCourse(11, "A Smith", 2),
		testCourse(12, "A Smith", 2),
	}}
	constraints := &mockConstraintRepo{}
	assignments := &mockAssignmentRepo{records: []models.AssignmentRecord{
		{ID: 1, ScheduleID: 7, SectionID: 11},
		{ID: 2, ScheduleID: 7, SectionID: 12},
	}}
	notices := &recordingNotifier{}
	svc := NewTimetableService(slots, rooms, sections, constraints, assignments, nil, nil, nil, notices, nil, nil, TimetableConfig{VirtualPool: 3})
	return svc, slots, sections, assignments, notices
}

func TestGridLoadsSessionOnFirstAccess(t *testing.T) {
	svc, slots, _, _, _ := newTestTimetable(t)

	snapshot, err := svc.Grid(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), snapshot.ScheduleID)
	assert.Len(t, snapshot.Available, 2)
	assert.Len(t, snapshot.TimeSlots, 4)
	// Two physical rooms plus the virtual pool of three.
	assert.Len(t, snapshot.Classrooms, 5)
	assert.Equal(t, 1, slots.fetchCount)

	// A second read reuses the session.
	_, err = svc.Grid(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 1, slots.fetchCount)
}

func TestGridLoadFailureKeepsNothing(t *testing.T) {
	svc, slots, _, _, notices := newTestTimetable(t)
	slots.slotsErr = errors.New("db down")

	_, err := svc.Grid(context.Background(), 7)
	require.Error(t, err)
	assert.NotEmpty(t, notices.messages)
}

func TestPlaceAndSnapshotFlags(t *testing.T) {
	svc, _, _, _, _ := newTestTimetable(t)

	_, err := svc.Place(context.Background(), 7, dto.PlaceRequest{CourseID: 11, Day: "Monday", ClassroomID: 101, SlotKey: "08:00 - 09:00"})
	require.NoError(t, err)

	snapshot, err := svc.Grid(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, snapshot.Cells, 2)
	assert.True(t, snapshot.Cells[0].Flags.IsStart)
	assert.Equal(t, 2, snapshot.Cells[0].Flags.Colspan)
	assert.True(t, snapshot.Cells[1].Flags.IsEnd)
	assert.Len(t, snapshot.Available, 1)
}

func TestPlaceValidatesRequest(t *testing.T) {
	svc, _, _, _, _ := newTestTimetable(t)

	_, err := svc.Place(context.Background(), 7, dto.PlaceRequest{CourseID: 11})
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, "VALIDATION_ERROR"))
}

func TestPlaceUnknownCourse(t *testing.T) {
	svc, _, _, _, _ := newTestTimetable(t)

	_, err := svc.Place(context.Background(), 7, dto.PlaceRequest{CourseID: 999, Day: "Monday", ClassroomID: 101, SlotKey: "08:00 - 09:00"})
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, "NOT_FOUND"))
}

func TestSaveFlattensCombinedBlocks(t *testing.T) {
	svc, _, _, assignments, notices := newTestTimetable(t)
	ctx := context.Background()

	_, err := svc.Place(ctx, 7, dto.PlaceRequest{CourseID: 11, Day: "Monday", ClassroomID: 101, SlotKey: "08:00 - 09:00"})
	require.NoError(t, err)
	result, err := svc.Place(ctx, 7, dto.PlaceRequest{CourseID: 12, Day: "Monday", ClassroomID: 101, SlotKey: "08:00 - 09:00"})
	require.NoError(t, err)
	require.True(t, result.Combined)

	saveResult, err := svc.Save(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, saveResult.PlacedRows)

	require.Len(t, assignments.saved, 2)
	for _, row := range assignments.saved {
		require.NotNil(t, row.Day)
		assert.Equal(t, "Monday", *row.Day)
		assert.Equal(t, "08:00", *row.StartTime)
		assert.Equal(t, "10:00", *row.EndTime)
		assert.Equal(t, int64(101), *row.ClassroomID)
	}
	assert.Equal(t, int64(1), assignments.saved[0].ID)
	assert.Equal(t, int64(2), assignments.saved[1].ID)
	assert.Contains(t, notices.levels, models.NotifySuccess)
}

func TestSaveFailureNotifies(t *testing.T) {
	svc, _, _, assignments, notices := newTestTimetable(t)
	assignments.saveErr = errors.New("db down")

	_, err := svc.Save(context.Background(), 7)
	require.Error(t, err)
	assert.Contains(t, notices.levels, models.NotifyError)
}

func TestRemoveReleasesSections(t *testing.T) {
	svc, _, _, _, _ := newTestTimetable(t)
	ctx := context.Background()

	_, err := svc.Place(ctx, 7, dto.PlaceRequest{CourseID: 11, Day: "Monday", ClassroomID: 101, SlotKey: "08:00 - 09:00"})
	require.NoError(t, err)

	released, err := svc.Remove(ctx, 7, 11)
	require.NoError(t, err)
	assert.Len(t, released, 1)

	snapshot, err := svc.Grid(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Cells)
	assert.Len(t, snapshot.Available, 2)
}

func TestSplitRebuildsSession(t *testing.T) {
	svc, _, sections, _, _ := newTestTimetable(t)

	parts, err := svc.Split(context.Background(), 7, 11, dto.SplitRequest{Durations: []float64{1, 1}})
	require.NoError(t, err)
	assert.Len(t, parts, 2)
	assert.Equal(t, []float64{1, 1}, sections.split)

	snapshot, err := svc.Grid(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, snapshot.Available, 3)
}

func TestExportRowsTokens(t *testing.T) {
	svc, _, _, _, _ := newTestTimetable(t)
	ctx := context.Background()

	_, err := svc.Place(ctx, 7, dto.PlaceRequest{CourseID: 11, Day: "Monday", ClassroomID: 101, SlotKey: "08:00 - 09:00"})
	require.NoError(t, err)

	rows, err := svc.ExportRows(ctx, 7)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Monday", rows[0].Day)
	assert.Equal(t, "R-101", rows[0].Room)
	assert.Equal(t, "08:00", rows[0].StartTime)
	assert.Equal(t, "10:00", rows[0].EndTime)
	assert.Equal(t, "[R-101.Mon.08:00.offline], [R-101.Mon.09:00.offline]", rows[0].Format)
}

func TestExportRowsOnlineOmitsRoomPart(t *testing.T) {
	svc, _, sections, assignments, _ := newTestTimetable(t)
	ctx := context.Background()

	online := testCourse(13, "B Jones", 1)
	online.IsOnline = true
	sections.sections = append(sections.sections, online)
	assignments.records = append(assignments.records, models.AssignmentRecord{ID: 3, ScheduleID: 7, SectionID: 13})

	_, err := svc.Place(ctx, 7, dto.PlaceRequest{CourseID: 13, Day: "Monday", ClassroomID: -1, SlotKey: "08:00 - 09:00"})
	require.NoError(t, err)

	rows, err := svc.ExportRows(ctx, 7)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ONLINE-1", rows[0].Room)
	assert.Equal(t, "[Mon.08:00.online]", rows[0].Format)
}

func TestSaveAfterSplitPersistsNewParts(t *testing.T) {
	svc, _, sections, assignments, _ := newTestTimetable(t)
	sections.assignments = assignments
	ctx := context.Background()

	parts, err := svc.Split(ctx, 7, 11, dto.SplitRequest{Durations: []float64{1, 1}})
	require.NoError(t, err)
	require.Len(t, parts, 2)
	part := parts[1]

	_, err = svc.Place(ctx, 7, dto.PlaceRequest{CourseID: part.ID, Day: "Monday", ClassroomID: 101, SlotKey: "08:00 - 09:00"})
	require.NoError(t, err)

	_, err = svc.Save(ctx, 7)
	require.NoError(t, err)
	require.Len(t, assignments.saved, 1)
	assert.Equal(t, part.ID, assignments.saved[0].SectionID)
	assert.NotZero(t, assignments.saved[0].ID)
}
