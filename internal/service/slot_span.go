package service

import (
	"math"

	"github.com/campushub/timetable-api/internal/models"
)

// SpanResult describes one attempt to fit a duration into consecutive
// slots starting at a fixed index.
type SpanResult struct {
	Slots          []int
	TotalHours     float64
	CanAccommodate bool
	BlockedBy      *models.CellAssignment
}

// SlotSpanCalculator converts a course duration into a contiguous run
// of slots. The run must sum to the requested duration exactly (within
// tolerance); running past the window or into an incompatible occupant
// is a hard failure, never a partial fit.
type SlotSpanCalculator struct {
	combiner *CourseCombiner
}

// NewSlotSpanCalculator creates a span calculator.
func NewSlotSpanCalculator(combiner *CourseCombiner) *SlotSpanCalculator {
	if combiner == nil {
		combiner = NewCourseCombiner()
	}
	return &SlotSpanCalculator{combiner: combiner}
}

// Compute walks slots forward from start, accumulating durations until
// the target is matched. A slot occupied by a different, non-combinable
// section stops the walk there.
func (c *SlotSpanCalculator) Compute(idx *TimeSlotIndex, grid *ScheduleGrid, course models.CourseSection, day string, classroomID int64, start int, duration float64) SpanResult {
	result := SpanResult{}
	total := 0.0

	for i := start; i < idx.Len(); i++ {
		slot, _ := idx.Slot(i)
		key := models.GridKey{Day: day, ClassroomID: classroomID, SlotKey: slot.Key()}
		if occupant, ok := grid.At(key); ok && !holdsSection(occupant, course.ID) {
			if eligible, _ := c.combiner.CanCombine(occupant.Section, course); !eligible {
				result.BlockedBy = occupant
				return result
			}
		}

		total += slot.DurationHours()
		result.Slots = append(result.Slots, i)
		result.TotalHours = total

		if math.Abs(total-duration) <= durationTolerance {
			result.CanAccommodate = true
			return result
		}
		if total > duration+durationTolerance {
			return result
		}
	}
	return result
}
