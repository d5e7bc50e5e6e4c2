package models

import (
	"strings"
	"time"
)

// CourseSection is one schedulable unit of a course. A combined section
// carries two or more members merged into a single placed block; members
// are an in-memory construct and are never persisted as such.
type CourseSection struct {
	ID            int64     `db:"id" json:"id"`
	SectionID     int64     `db:"section_id" json:"section_id"`
	ScheduleID    int64     `db:"schedule_id" json:"schedule_id"`
	Code          string    `db:"code" json:"code"`
	Title         string    `db:"title" json:"title"`
	Instructor    string    `db:"instructor" json:"instructor"`
	DurationHours float64   `db:"duration_hours" json:"duration_hours"`
	Capacity      int       `db:"capacity" json:"capacity"`
	IsOnline      bool      `db:"is_online" json:"is_online"`
	Color         string    `db:"color" json:"color"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`

	Members []CourseSection `db:"-" json:"members,omitempty"`
}

// IsCombined reports whether the section wraps two or more members.
func (c CourseSection) IsCombined() bool {
	return len(c.Members) >= 2
}

// MemberSections returns the underlying independent sections: the
// member list for a combined section, otherwise the section itself.
func (c CourseSection) MemberSections() []CourseSection {
	if c.IsCombined() {
		out := make([]CourseSection, len(c.Members))
		copy(out, c.Members)
		return out
	}
	return []CourseSection{c}
}

// NormalizeInstructor trims and lowercases an instructor name for
// comparison. Instructor names are free text with no stable identifier.
func NormalizeInstructor(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// SameInstructor compares two instructor names after normalization.
func SameInstructor(a, b string) bool {
	return NormalizeInstructor(a) == NormalizeInstructor(b)
}

// CourseSectionFilter describes query params for listing sections.
type CourseSectionFilter struct {
	ScheduleID int64
	Search     string
	Instructor string
	IsOnline   *bool
}
