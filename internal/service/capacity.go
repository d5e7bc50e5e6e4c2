package service

import (
	"fmt"
	"math"

	"github.com/campushub/timetable-api/internal/models"
)

// CapacityResult is the outcome of one room/course seat check.
type CapacityResult struct {
	Allowed     bool   `json:"allowed"`
	Warning     string `json:"warning,omitempty"`
	Deficit     int    `json:"deficit,omitempty"`
	Utilization int    `json:"utilization,omitempty"`
}

// CapacityValidator checks seat compatibility between a course and a
// room. Virtual rooms have no seat semantics and always pass.
type CapacityValidator struct{}

// NewCapacityValidator creates a capacity validator.
func NewCapacityValidator() *CapacityValidator {
	return &CapacityValidator{}
}

// Check compares course capacity against room capacity. Unknown
// capacities on either side allow placement with a warning.
func (v *CapacityValidator) Check(course models.CourseSection, room models.Classroom) CapacityResult {
	if room.IsVirtual() {
		return CapacityResult{Allowed: true}
	}
	if course.Capacity <= 0 || room.Capacity <= 0 {
		return CapacityResult{
			Allowed: true,
			Warning: fmt.Sprintf("capacity unverifiable (course %d, room %d)", course.Capacity, room.Capacity),
		}
	}
	if course.Capacity > room.Capacity {
		return CapacityResult{
			Allowed: false,
			Deficit: course.Capacity - room.Capacity,
		}
	}
	return CapacityResult{
		Allowed:     true,
		Utilization: int(math.Round(float64(course.Capacity) / float64(room.Capacity) * 100)),
	}
}
