package models

import "time"

// Weekdays is the ordered set of days a schedule covers.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

var dayAbbrevs = map[string]string{
	"Monday":    "Mon",
	"Tuesday":   "Tue",
	"Wednesday": "Wed",
	"Thursday":  "Thu",
	"Friday":    "Fri",
	"Saturday":  "Sat",
	"Sunday":    "Sun",
}

// DayAbbrev returns the three-letter abbreviation used in export tokens.
func DayAbbrev(day string) string {
	if abbrev, ok := dayAbbrevs[day]; ok {
		return abbrev
	}
	return day
}

// GridKey identifies one cell of the weekly grid.
type GridKey struct {
	Day         string
	ClassroomID int64
	SlotKey     string
}

// CellAssignment is a placed block: one section (possibly combined)
// occupying a contiguous run of slots in one room on one day. Every
// cell of the span maps to the same *CellAssignment.
type CellAssignment struct {
	Section     CourseSection `json:"section"`
	Day         string        `json:"day"`
	ClassroomID int64         `json:"classroom_id"`
	StartSlot   int           `json:"start_slot"`
	Span        int           `json:"span"`
}

// CellFlags are the render hints for one cell of a placed block. They
// are derived from position, never stored.
type CellFlags struct {
	IsStart  bool `json:"is_start"`
	IsMiddle bool `json:"is_middle"`
	IsEnd    bool `json:"is_end"`
	Colspan  int  `json:"colspan"`
}

// FlagsAt derives the render flags for the slot at the given absolute
// index within the assignment's span. Colspan is only meaningful on
// the start cell.
func (a *CellAssignment) FlagsAt(slotIndex int) CellFlags {
	offset := slotIndex - a.StartSlot
	flags := CellFlags{
		IsStart: offset == 0,
		IsEnd:   offset == a.Span-1,
	}
	flags.IsMiddle = !flags.IsStart && !flags.IsEnd
	if flags.IsStart {
		flags.Colspan = a.Span
	}
	return flags
}

// Covers reports whether the assignment occupies the given slot index.
func (a *CellAssignment) Covers(slotIndex int) bool {
	return slotIndex >= a.StartSlot && slotIndex < a.StartSlot+a.Span
}

// AssignmentRecord is one persisted row. Storage keeps one row per
// underlying section and has no notion of combination; unplaced rows
// carry NULL day, time slot and classroom.
type AssignmentRecord struct {
	ID                int64     `db:"id" json:"id"`
	ScheduleID        int64     `db:"schedule_id" json:"schedule_id"`
	SectionID         int64     `db:"section_id" json:"section_id"`
	Day               *string   `db:"day" json:"day"`
	TimeSlot          *string   `db:"time_slot" json:"time_slot"`
	EndTime           *string   `db:"end_time" json:"end_time"`
	ClassroomID       *int64    `db:"classroom_id" json:"classroom_id"`
	IsOnline          bool      `db:"is_online" json:"is_online"`
	SeparatedDuration float64   `db:"separated_duration" json:"separated_duration"`
	Capacity          int       `db:"capacity" json:"capacity"`
	Color             string    `db:"color" json:"color"`
	CourseCode        string    `db:"course_code" json:"course_code"`
	CourseTitle       string    `db:"course_title" json:"course_title"`
	Instructor        string    `db:"instructor" json:"instructor"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// IsPlaced reports whether the row describes a committed placement.
func (r AssignmentRecord) IsPlaced() bool {
	return r.Day != nil && r.TimeSlot != nil
}

// SaveRow is one entry of the flattened save payload. Combined blocks
// are decomposed into one row per member before persisting.
type SaveRow struct {
	ID          int64   `json:"id"`
	SectionID   int64   `json:"section_id"`
	Day         *string `json:"day"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	ClassroomID *int64  `json:"classroom_id"`
	IsOnline    bool    `json:"is_online"`
	Duration    float64 `json:"duration"`
}
