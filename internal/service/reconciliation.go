package service

import (
	"sort"

	"go.uber.org/zap"

	"github.com/campushub/timetable-api/internal/models"
)

// ReconciliationProcessor rebuilds a session from the denormalized
// persisted rows. Storage keeps one independent row per section, so
// combinations have to be inferred: rows sharing a cell and a
// compatible (instructor, duration) pair are merged back into one
// block.
type ReconciliationProcessor struct {
	spans       *SlotSpanCalculator
	combiner    *CourseCombiner
	virtualPool int
	logger      *zap.Logger
}

// NewReconciliationProcessor creates a processor. virtualPool is the
// size of the fixed online placeholder pool.
func NewReconciliationProcessor(spans *SlotSpanCalculator, combiner *CourseCombiner, virtualPool int, logger *zap.Logger) *ReconciliationProcessor {
	if spans == nil {
		spans = NewSlotSpanCalculator(nil)
	}
	if combiner == nil {
		combiner = NewCourseCombiner()
	}
	if virtualPool <= 0 {
		virtualPool = 5
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReconciliationProcessor{spans: spans, combiner: combiner, virtualPool: virtualPool, logger: logger}
}

type reconGroupKey struct {
	Day       string
	Classroom int64
	Start     string
}

type reconSubKey struct {
	Instructor string
	Duration   float64
}

type reconRow struct {
	record  models.AssignmentRecord
	section models.CourseSection
}

// Rebuild populates a fresh session: every section starts in the
// available pool, placed rows are grouped, merged where combination is
// inferred, and written into the grid. Rows whose time cannot be
// resolved are logged and left available, never silently dropped.
func (p *ReconciliationProcessor) Rebuild(sess *Session, sections []models.CourseSection, records []models.AssignmentRecord) {
	bySectionID := make(map[int64]models.CourseSection, len(sections))
	for _, s := range sections {
		bySectionID[s.ID] = s
		sess.Available[s.ID] = s
	}
	for _, r := range records {
		sess.RowID[r.SectionID] = r.ID
	}

	groups := make(map[reconGroupKey][]reconRow)
	var order []reconGroupKey
	for _, r := range records {
		if !r.IsPlaced() {
			continue
		}
		section, known := bySectionID[r.SectionID]
		if !known {
			p.logger.Warn("assignment row references unknown section",
				zap.Int64("row_id", r.ID),
				zap.Int64("section_id", r.SectionID))
			continue
		}
		start, _, ok := models.SplitClockRange(*r.TimeSlot)
		if !ok {
			start = models.NormalizeClock(*r.TimeSlot)
		}
		key := reconGroupKey{
			Day:       *r.Day,
			Classroom: p.classroomKey(r),
			Start:     start,
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], reconRow{record: r, section: section})
	}

	for _, key := range order {
		for _, sub := range p.subGroups(groups[key]) {
			p.placeGroup(sess, key, sub)
		}
	}
}

// classroomKey maps a row to its grid classroom axis. Online rows
// without a stored room are spread across the virtual pool.
func (p *ReconciliationProcessor) classroomKey(r models.AssignmentRecord) int64 {
	if r.ClassroomID != nil {
		return *r.ClassroomID
	}
	return -(r.SectionID%int64(p.virtualPool) + 1)
}

// subGroups splits a cell's rows by (instructor, duration). Order is
// kept deterministic by row id.
func (p *ReconciliationProcessor) subGroups(rows []reconRow) [][]reconRow {
	sort.Slice(rows, func(i, j int) bool { return rows[i].record.ID < rows[j].record.ID })

	byPair := make(map[reconSubKey][]reconRow)
	var order []reconSubKey
	for _, row := range rows {
		key := reconSubKey{
			Instructor: models.NormalizeInstructor(row.section.Instructor),
			Duration:   p.rowDuration(row),
		}
		if _, seen := byPair[key]; !seen {
			order = append(order, key)
		}
		byPair[key] = append(byPair[key], row)
	}

	out := make([][]reconRow, 0, len(order))
	for _, key := range order {
		out = append(out, byPair[key])
	}
	return out
}

func (p *ReconciliationProcessor) rowDuration(row reconRow) float64 {
	if row.record.SeparatedDuration > 0 {
		return row.record.SeparatedDuration
	}
	return row.section.DurationHours
}

// placeGroup resolves one sub-group's time range and writes it into
// the grid, merging members when the sub-group has two or more rows.
func (p *ReconciliationProcessor) placeGroup(sess *Session, key reconGroupKey, rows []reconRow) {
	head := rows[0]
	start, ok := sess.Index.ResolveStart(key.Start)
	if !ok {
		p.logger.Warn("reconciliation could not resolve start time",
			zap.String("day", key.Day),
			zap.Int64("classroom_id", key.Classroom),
			zap.String("start", key.Start),
			zap.Int("rows", len(rows)))
		return
	}

	section := head.section
	section.DurationHours = p.rowDuration(head)
	for _, row := range rows[1:] {
		member := row.section
		member.DurationHours = p.rowDuration(row)
		section = p.combiner.Combine(section, member)
	}

	span := p.resolveSpan(sess, head, key, start, section)
	if span <= 0 {
		p.logger.Warn("reconciliation could not fit duration",
			zap.Int64("section_id", head.section.ID),
			zap.String("day", key.Day),
			zap.String("start", key.Start),
			zap.Float64("duration", section.DurationHours))
		return
	}

	assignment := &models.CellAssignment{
		Section:     section,
		Day:         key.Day,
		ClassroomID: key.Classroom,
		StartSlot:   start,
		Span:        span,
	}
	for i := start; i < start+span; i++ {
		slot, ok := sess.Index.Slot(i)
		if !ok {
			break
		}
		sess.Grid.Set(models.GridKey{Day: key.Day, ClassroomID: key.Classroom, SlotKey: slot.Key()}, assignment)
	}
	for _, m := range section.MemberSections() {
		delete(sess.Available, m.ID)
	}
}

// resolveSpan prefers an exact end-time match and falls back to the
// duration walk when the stored end does not line up with any slot.
func (p *ReconciliationProcessor) resolveSpan(sess *Session, head reconRow, key reconGroupKey, start int, section models.CourseSection) int {
	if head.record.EndTime != nil {
		if end, ok := sess.Index.ResolveEnd(*head.record.EndTime); ok && end >= start {
			return end - start + 1
		}
	}
	result := p.spans.Compute(sess.Index, sess.Grid, section, key.Day, key.Classroom, start, section.DurationHours)
	if !result.CanAccommodate {
		return 0
	}
	return len(result.Slots)
}
