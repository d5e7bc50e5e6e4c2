package service

import (
	"github.com/campushub/timetable-api/internal/models"
)

// TimeSlotIndex holds the ordered slot sequence for one scheduling
// window and resolves clock strings and slot keys to positions.
type TimeSlotIndex struct {
	slots   []models.TimeSlot
	byKey   map[string]int
	byStart map[string]int
	byEnd   map[string]int
}

// NewTimeSlotIndex builds an index over an ordered slot sequence.
func NewTimeSlotIndex(slots []models.TimeSlot) *TimeSlotIndex {
	idx := &TimeSlotIndex{
		slots:   slots,
		byKey:   make(map[string]int, len(slots)),
		byStart: make(map[string]int, len(slots)),
		byEnd:   make(map[string]int, len(slots)),
	}
	for i, slot := range slots {
		idx.byKey[slot.Key()] = i
		idx.byStart[models.NormalizeClock(slot.StartTime)] = i
		idx.byEnd[models.NormalizeClock(slot.EndTime)] = i
	}
	return idx
}

// Len returns the number of slots in the window.
func (idx *TimeSlotIndex) Len() int {
	return len(idx.slots)
}

// Slot returns the slot at the given position.
func (idx *TimeSlotIndex) Slot(i int) (models.TimeSlot, bool) {
	if i < 0 || i >= len(idx.slots) {
		return models.TimeSlot{}, false
	}
	return idx.slots[i], true
}

// Slots returns the full ordered sequence.
func (idx *TimeSlotIndex) Slots() []models.TimeSlot {
	return idx.slots
}

// Resolve locates a slot by its identity token. It accepts either a
// full "HH:MM - HH:MM" key or a bare start clock.
func (idx *TimeSlotIndex) Resolve(token string) (int, bool) {
	if start, end, ok := models.SplitClockRange(token); ok {
		if i, found := idx.byKey[start+" - "+end]; found {
			return i, true
		}
		if i, found := idx.byStart[start]; found {
			return i, true
		}
		return 0, false
	}
	i, found := idx.byStart[models.NormalizeClock(token)]
	return i, found
}

// ResolveStart locates the slot beginning at the given clock.
func (idx *TimeSlotIndex) ResolveStart(clock string) (int, bool) {
	i, found := idx.byStart[models.NormalizeClock(clock)]
	return i, found
}

// ResolveEnd locates the slot ending at the given clock.
func (idx *TimeSlotIndex) ResolveEnd(clock string) (int, bool) {
	i, found := idx.byEnd[models.NormalizeClock(clock)]
	return i, found
}

// RangeKey renders the normalized "HH:MM - HH:MM" token covering the
// run [start, start+span).
func (idx *TimeSlotIndex) RangeKey(start, span int) string {
	if start < 0 || span <= 0 || start+span > len(idx.slots) {
		return ""
	}
	first := idx.slots[start]
	last := idx.slots[start+span-1]
	return models.NormalizeClock(first.StartTime) + " - " + models.NormalizeClock(last.EndTime)
}
