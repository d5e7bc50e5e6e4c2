package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/campushub/timetable-api/internal/models"
)

// durationTolerance is the slack allowed when comparing hour sums.
const durationTolerance = 0.01

// CourseCombiner merges and splits co-located sections. Two sections
// may share a block only when they have the same instructor and the
// same duration; day, classroom and exact time range equality is
// enforced by the placement validator before the merge is attempted.
type CourseCombiner struct{}

// NewCourseCombiner creates a combiner.
func NewCourseCombiner() *CourseCombiner {
	return &CourseCombiner{}
}

// CanCombine reports whether two sections are eligible to share a
// block. A false result always carries a reason.
func (c *CourseCombiner) CanCombine(a, b models.CourseSection) (bool, string) {
	if !models.SameInstructor(a.Instructor, b.Instructor) {
		return false, fmt.Sprintf("different instructors (%s vs %s)", strings.TrimSpace(a.Instructor), strings.TrimSpace(b.Instructor))
	}
	if math.Abs(a.DurationHours-b.DurationHours) > durationTolerance {
		return false, fmt.Sprintf("different durations (%.2fh vs %.2fh)", a.DurationHours, b.DurationHours)
	}
	return true, ""
}

// Combine merges the incoming section into the existing one and
// returns the combined record. Instructor, duration and descriptive
// defaults come from the existing section; display code and title are
// concatenated in placement order.
func (c *CourseCombiner) Combine(existing, incoming models.CourseSection) models.CourseSection {
	members := append(existing.MemberSections(), incoming.MemberSections()...)

	combined := existing
	combined.Members = members
	combined.Code = joinField(members, func(m models.CourseSection) string { return m.Code })
	combined.Title = joinField(members, func(m models.CourseSection) string { return m.Title })
	return combined
}

// Split decomposes a combined record into its independent members,
// each stripped of combination state. Splitting a plain section
// returns it unchanged as a single-element slice.
func (c *CourseCombiner) Split(section models.CourseSection) []models.CourseSection {
	members := section.MemberSections()
	out := make([]models.CourseSection, len(members))
	for i, m := range members {
		m.Members = nil
		out[i] = m
	}
	return out
}

func joinField(members []models.CourseSection, field func(models.CourseSection) string) string {
	parts := make([]string, 0, len(members))
	for _, m := range members {
		parts = append(parts, field(m))
	}
	return strings.Join(parts, " + ")
}
