package models

import (
	"fmt"
	"strings"
	"time"
)

// TimeSlot is one column of the weekly grid. Slots are ordered and may
// have non-uniform lengths.
type TimeSlot struct {
	ID        int64     `db:"id" json:"id"`
	Sequence  int       `db:"sequence" json:"sequence"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Key returns the stable identity string used as the grid's time axis.
func (s TimeSlot) Key() string {
	return fmt.Sprintf("%s - %s", NormalizeClock(s.StartTime), NormalizeClock(s.EndTime))
}

// DurationHours returns the slot length in hours, parsed from the
// normalized start and end clocks. Malformed clocks yield zero.
func (s TimeSlot) DurationHours() float64 {
	start, okStart := parseClock(s.StartTime)
	end, okEnd := parseClock(s.EndTime)
	if !okStart || !okEnd {
		return 0
	}
	return (end - start).Hours()
}

// NormalizeClock zero-pads a clock string to HH:MM so that "9:00" and
// "09:00" compare equal. Inputs without a colon are returned trimmed.
func NormalizeClock(clock string) string {
	clock = strings.TrimSpace(clock)
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return clock
	}
	hh := parts[0]
	if len(hh) == 1 {
		hh = "0" + hh
	}
	mm := parts[1]
	if len(mm) == 1 {
		mm = "0" + mm
	}
	return hh + ":" + mm
}

// SplitClockRange splits a "HH:MM - HH:MM" token into its normalized
// start and end clocks. The separator may appear with or without
// surrounding spaces.
func SplitClockRange(token string) (start, end string, ok bool) {
	parts := strings.SplitN(token, "-", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return NormalizeClock(parts[0]), NormalizeClock(parts[1]), true
}

// ClockMinutes converts an HH:MM clock to minutes since midnight.
func ClockMinutes(clock string) (int, bool) {
	d, ok := parseClock(clock)
	if !ok {
		return 0, false
	}
	return int(d.Minutes()), true
}

func parseClock(clock string) (time.Duration, bool) {
	clock = NormalizeClock(clock)
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	var hh, mm int
	if _, err := fmt.Sscanf(clock, "%d:%d", &hh, &mm); err != nil {
		return 0, false
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return 0, false
	}
	return time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute, true
}
