package service

import (
	"fmt"

	"github.com/campushub/timetable-api/internal/models"
	appErrors "github.com/campushub/timetable-api/pkg/errors"
)

type constraintKey struct {
	Instructor string
	Day        string
}

// ConstraintChecker verifies declared instructor unavailability and
// detects double-booking against the current grid. Both checks are
// scoped to one instructor and one day.
type ConstraintChecker struct {
	forbidden map[constraintKey][]string
}

// NewConstraintChecker indexes the declared constraints by normalized
// instructor name and day.
func NewConstraintChecker(constraints []models.InstructorConstraint) *ConstraintChecker {
	forbidden := make(map[constraintKey][]string)
	for _, c := range constraints {
		key := constraintKey{Instructor: models.NormalizeInstructor(c.Instructor), Day: c.Day}
		forbidden[key] = append(forbidden[key], c.TimePeriod...)
	}
	return &ConstraintChecker{forbidden: forbidden}
}

// CheckAvailability tests every slot of the candidate run against the
// instructor's forbidden tokens for that day. Tokens are either exact
// slot ranges or wider containment ranges; both reject on a hit.
func (c *ConstraintChecker) CheckAvailability(idx *TimeSlotIndex, instructor, day string, slots []int) error {
	key := constraintKey{Instructor: models.NormalizeInstructor(instructor), Day: day}
	tokens := c.forbidden[key]
	if len(tokens) == 0 {
		return nil
	}

	for _, i := range slots {
		slot, ok := idx.Slot(i)
		if !ok {
			continue
		}
		for _, token := range tokens {
			if tokenForbidsSlot(token, slot) {
				return appErrors.Clone(appErrors.ErrInstructorUnavailable,
					fmt.Sprintf("%s is unavailable on %s at %s", instructor, day, slot.Key()))
			}
		}
	}
	return nil
}

// CheckDoubleBooking scans the day's grid entries for slots where the
// instructor already teaches another section. Occupancy in the same
// room with an identical time range passes through as a combination
// attempt; anything else rejects.
func (c *ConstraintChecker) CheckDoubleBooking(idx *TimeSlotIndex, grid *ScheduleGrid, course models.CourseSection, day string, classroomID int64, slots []int) error {
	type booking struct {
		classroomID int64
		rangeKey    string
	}
	occupied := make(map[int]booking)
	for key, a := range grid.EntriesForDay(day) {
		if holdsSection(a, course.ID) {
			continue
		}
		if !models.SameInstructor(a.Section.Instructor, course.Instructor) {
			continue
		}
		i, ok := idx.Resolve(key.SlotKey)
		if !ok {
			continue
		}
		occupied[i] = booking{
			classroomID: key.ClassroomID,
			rangeKey:    idx.RangeKey(a.StartSlot, a.Span),
		}
	}
	if len(occupied) == 0 {
		return nil
	}

	candidateRange := idx.RangeKey(slots[0], len(slots))
	for _, i := range slots {
		b, taken := occupied[i]
		if !taken {
			continue
		}
		if b.classroomID == classroomID {
			if b.rangeKey == candidateRange {
				continue
			}
			return appErrors.Clone(appErrors.ErrCombineIneligible,
				fmt.Sprintf("%s already teaches in this room at %s; combination requires identical time ranges", course.Instructor, b.rangeKey))
		}
		return appErrors.Clone(appErrors.ErrInstructorDoubleBooked,
			fmt.Sprintf("%s already teaches elsewhere on %s at %s", course.Instructor, day, b.rangeKey))
	}
	return nil
}

// tokenForbidsSlot tests one forbidden token against one slot: exact
// token equality, or containment when the token is a wider range.
func tokenForbidsSlot(token string, slot models.TimeSlot) bool {
	start, end, ok := models.SplitClockRange(token)
	if !ok {
		return models.NormalizeClock(token) == models.NormalizeClock(slot.StartTime)
	}
	if start == models.NormalizeClock(slot.StartTime) && end == models.NormalizeClock(slot.EndTime) {
		return true
	}
	rangeStart, okStart := models.ClockMinutes(start)
	rangeEnd, okEnd := models.ClockMinutes(end)
	slotStart, okSlotStart := models.ClockMinutes(slot.StartTime)
	slotEnd, okSlotEnd := models.ClockMinutes(slot.EndTime)
	if !okStart || !okEnd || !okSlotStart || !okSlotEnd {
		return false
	}
	return slotStart >= rangeStart && slotEnd <= rangeEnd
}
