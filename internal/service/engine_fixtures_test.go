package service

import (
	"github.com/campushub/timetable-api/internal/models"
)

// Slots: two 1h slots, one 1.5h slot, one 0.5h slot. The uneven tail
// exercises exact-sum accounting.
func testSlots() []models.TimeSlot {
	return []models.TimeSlot{
		{ID: 1, Sequence: 1, StartTime: "8:00", EndTime: "9:00"},
		{ID: 2, Sequence: 2, StartTime: "09:00", EndTime: "10:00"},
		{ID: 3, Sequence: 3, StartTime: "10:00", EndTime: "11:30"},
		{ID: 4, Sequence: 4, StartTime: "11:30", EndTime: "12:00"},
	}
}

func testRooms() []models.Classroom {
	return []models.Classroom{
		{ID: 101, Code: "R-101", Capacity: 35},
		{ID: 102, Code: "R-102", Capacity: 50},
		models.VirtualClassroom(1),
	}
}

func testSession(constraints ...models.InstructorConstraint) *Session {
	return NewSession(7, NewTimeSlotIndex(testSlots()), testRooms(), NewConstraintChecker(constraints))
}

func testCourse(id int64, instructor string, duration float64) models.CourseSection {
	return models.CourseSection{
		ID:            id,
		SectionID:     id,
		ScheduleID:    7,
		Code:          "CS10" + string(rune('0'+id%10)),
		Title:         "Course",
		Instructor:    instructor,
		DurationHours: duration,
		Capacity:      30,
		Color:         "#3366ff",
	}
}

func testPlacement() *PlacementService {
	combiner := NewCourseCombiner()
	return NewPlacementService(NewSlotSpanCalculator(combiner), NewCapacityValidator(), combiner, nil)
}

func addAvailable(sess *Session, sections ...models.CourseSection) {
	for _, s := range sections {
		sess.Available[s.ID] = s
	}
}
