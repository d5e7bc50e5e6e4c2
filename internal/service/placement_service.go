package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/campushub/timetable-api/internal/models"
	appErrors "github.com/campushub/timetable-api/pkg/errors"
)

// PlacementRequest is one placement intent: a course (possibly a
// combined block being moved) dropped onto a cell. The course travels
// in the request; the engine keeps no ambient drag state.
type PlacementRequest struct {
	Course      models.CourseSection
	Day         string
	ClassroomID int64
	SlotKey     string
}

// PlacementResult describes a successful (or previewed) placement.
type PlacementResult struct {
	Assignment models.CellAssignment `json:"assignment"`
	Combined   bool                  `json:"combined"`
	Capacity   CapacityResult        `json:"capacity"`
}

// PlacementService is the state machine that turns placement intents
// into atomic grid transitions. Every gate runs before any mutation;
// a rejection leaves the grid and pools untouched.
type PlacementService struct {
	spans    *SlotSpanCalculator
	capacity *CapacityValidator
	combiner *CourseCombiner
	logger   *zap.Logger
}

// NewPlacementService constructs the placement state machine.
func NewPlacementService(spans *SlotSpanCalculator, capacity *CapacityValidator, combiner *CourseCombiner, logger *zap.Logger) *PlacementService {
	if spans == nil {
		spans = NewSlotSpanCalculator(nil)
	}
	if capacity == nil {
		capacity = NewCapacityValidator()
	}
	if combiner == nil {
		combiner = NewCourseCombiner()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlacementService{spans: spans, capacity: capacity, combiner: combiner, logger: logger}
}

// plan is a fully validated transition, ready to commit.
type plan struct {
	result   PlacementResult
	slots    []int
	occupant *models.CellAssignment
}

// Place validates the request and, when every gate passes, commits the
// transition: the course leaves the available pool and occupies its
// span, merging with an eligible occupant when one is present.
func (s *PlacementService) Place(sess *Session, req PlacementRequest) (*PlacementResult, error) {
	p, err := s.validate(sess, req)
	if err != nil {
		return nil, err
	}
	s.commit(sess, req, p)
	s.logger.Info("course placed",
		zap.Int64("course_id", req.Course.ID),
		zap.String("day", req.Day),
		zap.Int64("classroom_id", req.ClassroomID),
		zap.String("slot", req.SlotKey),
		zap.Bool("combined", p.result.Combined))
	return &p.result, nil
}

// Preview runs the same gates as Place without committing. It backs
// hover feedback and must never mutate the session.
func (s *PlacementService) Preview(sess *Session, req PlacementRequest) (*PlacementResult, error) {
	p, err := s.validate(sess, req)
	if err != nil {
		return nil, err
	}
	return &p.result, nil
}

// Remove takes a course out of the grid. Combined blocks are split
// first; every member returns to the available pool clean.
func (s *PlacementService) Remove(sess *Session, courseID int64) ([]models.CourseSection, error) {
	assignment, ok := sess.Grid.FindBySection(courseID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("course %d is not placed", courseID))
	}
	sess.Grid.RemoveAssignment(assignment)
	members := s.combiner.Split(assignment.Section)
	for _, m := range members {
		sess.Available[m.ID] = m
	}
	s.logger.Info("course removed",
		zap.Int64("course_id", courseID),
		zap.Int("released_sections", len(members)))
	return members, nil
}

func (s *PlacementService) validate(sess *Session, req PlacementRequest) (*plan, error) {
	course := req.Course

	room, ok := sess.Classrooms[req.ClassroomID]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("classroom %d not found", req.ClassroomID))
	}
	if course.IsOnline != room.IsVirtual() {
		return nil, appErrors.Clone(appErrors.ErrOnlineMismatch, onlineMismatchMessage(course, room))
	}

	capacity := s.capacity.Check(course, room)
	if !capacity.Allowed {
		return nil, appErrors.Clone(appErrors.ErrCapacityExceeded,
			fmt.Sprintf("course needs %d seats, room %s holds %d (short by %d)", course.Capacity, room.Code, room.Capacity, capacity.Deficit))
	}

	start, ok := sess.Index.Resolve(req.SlotKey)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrTimeSlotNotFound, fmt.Sprintf("time slot %q not found", req.SlotKey))
	}

	startSlot, _ := sess.Index.Slot(start)
	startKey := models.GridKey{Day: req.Day, ClassroomID: req.ClassroomID, SlotKey: startSlot.Key()}
	var occupant *models.CellAssignment
	if existing, taken := sess.Grid.At(startKey); taken && !holdsSection(existing, course.ID) {
		if eligible, reason := s.combiner.CanCombine(existing.Section, course); !eligible {
			return nil, appErrors.Clone(appErrors.ErrCombineIneligible, reason)
		}
		occupant = existing
	}

	span := s.spans.Compute(sess.Index, sess.Grid, course, req.Day, req.ClassroomID, start, course.DurationHours)
	if !span.CanAccommodate {
		return nil, appErrors.Clone(appErrors.ErrDurationUnachievable,
			fmt.Sprintf("%.2fh cannot be matched by consecutive slots from %s (reached %.2fh)", course.DurationHours, req.SlotKey, span.TotalHours))
	}

	// Re-scan the full span: the start cell check above only covers the
	// first slot, and a combinable occupant must cover the identical
	// range to merge.
	for _, i := range span.Slots {
		slot, _ := sess.Index.Slot(i)
		key := models.GridKey{Day: req.Day, ClassroomID: req.ClassroomID, SlotKey: slot.Key()}
		existing, taken := sess.Grid.At(key)
		if !taken || holdsSection(existing, course.ID) {
			continue
		}
		if eligible, reason := s.combiner.CanCombine(existing.Section, course); !eligible {
			return nil, appErrors.Clone(appErrors.ErrCombineIneligible, reason)
		}
		if occupant == nil || existing != occupant {
			return nil, appErrors.Clone(appErrors.ErrCombineIneligible, "combination requires identical time ranges")
		}
	}
	if occupant != nil {
		occupantRange := sess.Index.RangeKey(occupant.StartSlot, occupant.Span)
		candidateRange := sess.Index.RangeKey(start, len(span.Slots))
		if occupant.Day != req.Day || occupantRange != candidateRange {
			return nil, appErrors.Clone(appErrors.ErrCombineIneligible, "combination requires identical time ranges")
		}
	}

	if err := sess.Checker.CheckAvailability(sess.Index, course.Instructor, req.Day, span.Slots); err != nil {
		return nil, err
	}
	if err := sess.Checker.CheckDoubleBooking(sess.Index, sess.Grid, course, req.Day, req.ClassroomID, span.Slots); err != nil {
		return nil, err
	}

	section := course
	combined := false
	if occupant != nil {
		section = s.combiner.Combine(occupant.Section, course)
		combined = true
	}
	return &plan{
		result: PlacementResult{
			Assignment: models.CellAssignment{
				Section:     section,
				Day:         req.Day,
				ClassroomID: req.ClassroomID,
				StartSlot:   start,
				Span:        len(span.Slots),
			},
			Combined: combined,
			Capacity: capacity,
		},
		slots:    span.Slots,
		occupant: occupant,
	}, nil
}

func (s *PlacementService) commit(sess *Session, req PlacementRequest, p *plan) {
	if prior, ok := sess.Grid.FindBySection(req.Course.ID); ok {
		sess.Grid.RemoveAssignment(prior)
	}
	if p.occupant != nil {
		sess.Grid.RemoveAssignment(p.occupant)
	}

	assignment := p.result.Assignment
	for _, i := range p.slots {
		slot, _ := sess.Index.Slot(i)
		key := models.GridKey{Day: req.Day, ClassroomID: req.ClassroomID, SlotKey: slot.Key()}
		sess.Grid.Set(key, &assignment)
	}

	for _, m := range req.Course.MemberSections() {
		delete(sess.Available, m.ID)
	}
}

func onlineMismatchMessage(course models.CourseSection, room models.Classroom) string {
	if course.IsOnline {
		return fmt.Sprintf("online section %s cannot be placed in physical room %s", course.Code, room.Code)
	}
	return fmt.Sprintf("in-person section %s cannot be placed in online slot %s", course.Code, room.Code)
}
