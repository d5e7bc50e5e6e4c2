package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/campushub/timetable-api/internal/dto"
	"github.com/campushub/timetable-api/internal/models"
)

// ExportRows flattens the session into one row per placed section,
// combined blocks decomposed. The format column carries one
// [room.day.start.type] token per occupied slot; online rows omit the
// room part.
func (s *TimetableService) ExportRows(ctx context.Context, scheduleID int64) ([]dto.ExportRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	var rows []dto.ExportRow
	for _, a := range sess.Grid.Assignments() {
		roomCode := s.roomCode(sess, a.ClassroomID)
		rangeKey := sess.Index.RangeKey(a.StartSlot, a.Span)
		start, end, _ := models.SplitClockRange(rangeKey)

		for _, member := range s.combiner.Split(a.Section) {
			rows = append(rows, dto.ExportRow{
				CourseCode: member.Code,
				CourseName: member.Title,
				Instructor: strings.TrimSpace(member.Instructor),
				Day:        a.Day,
				Room:       roomCode,
				StartTime:  start,
				EndTime:    end,
				Duration:   member.DurationHours,
				Format:     s.formatTokens(sess, a, roomCode, member.IsOnline),
			})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Day != rows[j].Day {
			return dayOrder(rows[i].Day) < dayOrder(rows[j].Day)
		}
		if rows[i].StartTime != rows[j].StartTime {
			return rows[i].StartTime < rows[j].StartTime
		}
		return rows[i].CourseCode < rows[j].CourseCode
	})
	return rows, nil
}

func (s *TimetableService) roomCode(sess *Session, classroomID int64) string {
	if room, ok := sess.Classrooms[classroomID]; ok {
		return room.Code
	}
	return fmt.Sprintf("%d", classroomID)
}

func (s *TimetableService) formatTokens(sess *Session, a *models.CellAssignment, roomCode string, online bool) string {
	mode := "offline"
	roomPart := roomCode + "."
	if online {
		mode = "online"
		roomPart = ""
	}
	tokens := make([]string, 0, a.Span)
	for i := a.StartSlot; i < a.StartSlot+a.Span; i++ {
		slot, ok := sess.Index.Slot(i)
		if !ok {
			continue
		}
		tokens = append(tokens, fmt.Sprintf("[%s%s.%s.%s]", roomPart, models.DayAbbrev(a.Day), models.NormalizeClock(slot.StartTime), mode))
	}
	return strings.Join(tokens, ", ")
}
