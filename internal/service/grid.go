package service

import (
	"github.com/campushub/timetable-api/internal/models"
)

// ScheduleGrid is the authoritative keyed store of cell assignments.
// Every cell of a placed block's span maps to the same assignment
// pointer. The grid itself enforces nothing; only the placement
// validator mutates it.
type ScheduleGrid struct {
	cells map[models.GridKey]*models.CellAssignment
}

// NewScheduleGrid creates an empty grid.
func NewScheduleGrid() *ScheduleGrid {
	return &ScheduleGrid{cells: make(map[models.GridKey]*models.CellAssignment)}
}

// At returns the assignment occupying a cell, if any.
func (g *ScheduleGrid) At(key models.GridKey) (*models.CellAssignment, bool) {
	a, ok := g.cells[key]
	return a, ok
}

// Set writes an assignment into one cell.
func (g *ScheduleGrid) Set(key models.GridKey, a *models.CellAssignment) {
	g.cells[key] = a
}

// Delete clears one cell.
func (g *ScheduleGrid) Delete(key models.GridKey) {
	delete(g.cells, key)
}

// RemoveAssignment clears every cell held by the given assignment and
// returns the keys that were cleared.
func (g *ScheduleGrid) RemoveAssignment(a *models.CellAssignment) []models.GridKey {
	var removed []models.GridKey
	for key, occupant := range g.cells {
		if occupant == a {
			removed = append(removed, key)
		}
	}
	for _, key := range removed {
		delete(g.cells, key)
	}
	return removed
}

// FindBySection returns the assignment holding the given course id,
// either directly or as a member of a combined block.
func (g *ScheduleGrid) FindBySection(courseID int64) (*models.CellAssignment, bool) {
	for _, a := range g.cells {
		if holdsSection(a, courseID) {
			return a, true
		}
	}
	return nil, false
}

// Assignments returns each distinct placed block once.
func (g *ScheduleGrid) Assignments() []*models.CellAssignment {
	seen := make(map[*models.CellAssignment]bool)
	var out []*models.CellAssignment
	for _, a := range g.cells {
		if !seen[a] {
			seen[a] = true
			out = append(out, a)
		}
	}
	return out
}

// EntriesForDay returns every (key, assignment) pair on one day.
func (g *ScheduleGrid) EntriesForDay(day string) map[models.GridKey]*models.CellAssignment {
	out := make(map[models.GridKey]*models.CellAssignment)
	for key, a := range g.cells {
		if key.Day == day {
			out[key] = a
		}
	}
	return out
}

// Len returns the number of occupied cells.
func (g *ScheduleGrid) Len() int {
	return len(g.cells)
}

func holdsSection(a *models.CellAssignment, courseID int64) bool {
	if a == nil {
		return false
	}
	if a.Section.ID == courseID {
		return true
	}
	for _, m := range a.Section.Members {
		if m.ID == courseID {
			return true
		}
	}
	return false
}
