package dto

import "github.com/campushub/timetable-api/internal/models"

// PlaceRequest is the body of a placement or preview call. The dragged
// course id is explicit; the engine keeps no ambient drag state.
type PlaceRequest struct {
	CourseID    int64  `json:"course_id" validate:"required"`
	Day         string `json:"day" validate:"required"`
	ClassroomID int64  `json:"classroom_id" validate:"required"`
	SlotKey     string `json:"slot_key" validate:"required"`
}

// GridCell is one occupied cell of the rendered grid, flags derived
// from span position.
type GridCell struct {
	Day         string               `json:"day"`
	ClassroomID int64                `json:"classroom_id"`
	SlotKey     string               `json:"slot_key"`
	Section     models.CourseSection `json:"section"`
	Flags       models.CellFlags     `json:"flags"`
}

// GridSnapshot is the full session state returned to clients.
type GridSnapshot struct {
	ScheduleID int64                  `json:"schedule_id"`
	TimeSlots  []models.TimeSlot      `json:"time_slots"`
	Classrooms []models.Classroom     `json:"classrooms"`
	Cells      []GridCell             `json:"cells"`
	Available  []models.CourseSection `json:"available"`
}

// SplitRequest divides a section's duration into separately placeable
// parts.
type SplitRequest struct {
	Durations []float64 `json:"durations" validate:"required,min=2,dive,gt=0"`
}

// SaveResult reports how many rows the flattened save touched.
type SaveResult struct {
	PlacedRows int `json:"placed_rows"`
	TotalRows  int `json:"total_rows"`
}
