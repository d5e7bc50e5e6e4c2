package service

import (
	"github.com/campushub/timetable-api/internal/models"
)

// Session is the in-memory state of one schedule: the resolved slot
// index, the room list, the grid and the pool of unplaced sections.
// Sessions are rebuilt by reconciliation and mutated only through the
// placement service, one transition at a time.
type Session struct {
	ScheduleID int64
	Index      *TimeSlotIndex
	Grid       *ScheduleGrid
	Classrooms map[int64]models.Classroom
	Checker    *ConstraintChecker

	// Available holds unplaced sections keyed by course id. A section
	// is either here or placed in the grid, never both.
	Available map[int64]models.CourseSection

	// RowID maps a course id to its persisted assignment row.
	RowID map[int64]int64
}

// NewSession builds an empty session over resolved collections.
func NewSession(scheduleID int64, idx *TimeSlotIndex, rooms []models.Classroom, checker *ConstraintChecker) *Session {
	byID := make(map[int64]models.Classroom, len(rooms))
	for _, room := range rooms {
		byID[room.ID] = room
	}
	return &Session{
		ScheduleID: scheduleID,
		Index:      idx,
		Grid:       NewScheduleGrid(),
		Classrooms: byID,
		Checker:    checker,
		Available:  make(map[int64]models.CourseSection),
		RowID:      make(map[int64]int64),
	}
}

// AvailableSections returns the unplaced pool as a slice.
func (s *Session) AvailableSections() []models.CourseSection {
	out := make([]models.CourseSection, 0, len(s.Available))
	for _, section := range s.Available {
		out = append(out, section)
	}
	return out
}
