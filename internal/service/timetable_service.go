package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campushub/timetable-api/internal/dto"
	"github.com/campushub/timetable-api/internal/models"
	appErrors "github.com/campushub/timetable-api/pkg/errors"
)

type timeSlotRepository interface {
	ListBySchedule(ctx context.Context, scheduleID int64) ([]models.TimeSlot, error)
}

type classroomRepository interface {
	ListBySchedule(ctx context.Context, scheduleID int64) ([]models.Classroom, error)
}

type courseSectionRepository interface {
	ListBySchedule(ctx context.Context, filter models.CourseSectionFilter) ([]models.CourseSection, error)
	SplitDuration(ctx context.Context, id int64, durations []float64) ([]models.CourseSection, error)
}

type constraintRepository interface {
	ListBySchedule(ctx context.Context, scheduleID int64) ([]models.InstructorConstraint, error)
}

type assignmentRepository interface {
	ListBySchedule(ctx context.Context, scheduleID int64) ([]models.AssignmentRecord, error)
	ReplaceForSchedule(ctx context.Context, scheduleID int64, rows []models.SaveRow) error
}

type notifier interface {
	Notify(level, message string)
}

// TimetableConfig tunes session behaviour.
type TimetableConfig struct {
	VirtualPool   int
	CollectionTTL time.Duration
}

// TimetableService owns the per-schedule sessions. All transitions are
// serialized: a placement, removal, save or reload runs to completion
// before the next is accepted, so a half-applied grid is never
// observable.
type TimetableService struct {
	slots       timeSlotRepository
	rooms       classroomRepository
	sections    courseSectionRepository
	constraints constraintRepository
	assignments assignmentRepository
	cache       *CacheService
	placement   *PlacementService
	recon       *ReconciliationProcessor
	combiner    *CourseCombiner
	notifier    notifier
	validator   *validator.Validate
	logger      *zap.Logger
	cfg         TimetableConfig

	mu       sync.Mutex
	sessions map[int64]*Session
}

// NewTimetableService constructs the session orchestrator.
func NewTimetableService(
	slots timeSlotRepository,
	rooms classroomRepository,
	sections courseSectionRepository,
	constraints constraintRepository,
	assignments assignmentRepository,
	cache *CacheService,
	placement *PlacementService,
	recon *ReconciliationProcessor,
	notifier notifier,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg TimetableConfig,
) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.VirtualPool <= 0 {
		cfg.VirtualPool = 5
	}
	if cfg.CollectionTTL <= 0 {
		cfg.CollectionTTL = 5 * time.Minute
	}
	combiner := NewCourseCombiner()
	if placement == nil {
		placement = NewPlacementService(NewSlotSpanCalculator(combiner), NewCapacityValidator(), combiner, logger)
	}
	if recon == nil {
		recon = NewReconciliationProcessor(NewSlotSpanCalculator(combiner), combiner, cfg.VirtualPool, logger)
	}
	return &TimetableService{
		slots:       slots,
		rooms:       rooms,
		sections:    sections,
		constraints: constraints,
		assignments: assignments,
		cache:       cache,
		placement:   placement,
		recon:       recon,
		combiner:    combiner,
		notifier:    notifier,
		validator:   validate,
		logger:      logger,
		cfg:         cfg,
		sessions:    make(map[int64]*Session),
	}
}

// Grid returns the rendered snapshot of a schedule's session, loading
// it on first access.
func (s *TimetableService) Grid(ctx context.Context, scheduleID int64) (*dto.GridSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	return s.snapshot(sess), nil
}

// Place runs one placement transition.
func (s *TimetableService) Place(ctx context.Context, scheduleID int64, req dto.PlaceRequest) (*PlacementResult, error) {
	return s.transition(ctx, scheduleID, req, s.placement.Place)
}

// Preview runs the placement gates without committing. It backs hover
// feedback during a drag.
func (s *TimetableService) Preview(ctx context.Context, scheduleID int64, req dto.PlaceRequest) (*PlacementResult, error) {
	return s.transition(ctx, scheduleID, req, s.placement.Preview)
}

func (s *TimetableService) transition(ctx context.Context, scheduleID int64, req dto.PlaceRequest, apply func(*Session, PlacementRequest) (*PlacementResult, error)) (*PlacementResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid placement request")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	course, err := s.resolveCourse(sess, req.CourseID)
	if err != nil {
		return nil, err
	}
	return apply(sess, PlacementRequest{
		Course:      course,
		Day:         req.Day,
		ClassroomID: req.ClassroomID,
		SlotKey:     req.SlotKey,
	})
}

// Remove takes a course off the grid and returns the released
// sections.
func (s *TimetableService) Remove(ctx context.Context, scheduleID, courseID int64) ([]models.CourseSection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	return s.placement.Remove(sess, courseID)
}

// Save flattens the grid into independent rows and persists them.
// Combined blocks are decomposed; sections left in the available pool
// are saved unplaced.
func (s *TimetableService) Save(ctx context.Context, scheduleID int64) (*dto.SaveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	rows := s.flatten(sess)
	if err := s.assignments.ReplaceForSchedule(ctx, scheduleID, rows); err != nil {
		s.notify(models.NotifyError, fmt.Sprintf("saving schedule %d failed: %v", scheduleID, err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "save assignments")
	}
	s.invalidateCollections(ctx, scheduleID)
	s.notify(models.NotifySuccess, fmt.Sprintf("schedule %d saved (%d placed rows)", scheduleID, len(rows)))

	return &dto.SaveResult{
		PlacedRows: len(rows),
		TotalRows:  len(rows) + len(sess.Available),
	}, nil
}

// Split divides a section's duration into separately placeable parts
// and rebuilds the session so the new siblings appear in the pool.
func (s *TimetableService) Split(ctx context.Context, scheduleID, sectionID int64, req dto.SplitRequest) ([]models.CourseSection, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid split request")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	parts, err := s.sections.SplitDuration(ctx, sectionID, req.Durations)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "split section")
	}
	s.invalidateCollections(ctx, scheduleID)
	if _, err := s.reload(ctx, scheduleID); err != nil {
		return nil, err
	}
	return parts, nil
}

// Reload discards the in-memory session and rebuilds it from storage.
func (s *TimetableService) Reload(ctx context.Context, scheduleID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.reload(ctx, scheduleID)
	return err
}

// session returns the live session, loading it when absent. Callers
// hold s.mu.
func (s *TimetableService) session(ctx context.Context, scheduleID int64) (*Session, error) {
	if sess, ok := s.sessions[scheduleID]; ok {
		return sess, nil
	}
	return s.reload(ctx, scheduleID)
}

// reload fetches the four base collections in order (slots and rooms
// first, both required to resolve keys) and runs a fresh
// reconciliation pass. On any fetch failure the previous session is
// kept untouched.
func (s *TimetableService) reload(ctx context.Context, scheduleID int64) (*Session, error) {
	slots, err := s.fetchSlots(ctx, scheduleID)
	if err != nil {
		return nil, s.fetchFailed(scheduleID, "time slots", err)
	}
	rooms, err := s.fetchRooms(ctx, scheduleID)
	if err != nil {
		return nil, s.fetchFailed(scheduleID, "classrooms", err)
	}
	sections, err := s.fetchSections(ctx, scheduleID)
	if err != nil {
		return nil, s.fetchFailed(scheduleID, "course sections", err)
	}
	constraints, err := s.fetchConstraints(ctx, scheduleID)
	if err != nil {
		return nil, s.fetchFailed(scheduleID, "instructor constraints", err)
	}
	records, err := s.assignments.ListBySchedule(ctx, scheduleID)
	if err != nil {
		return nil, s.fetchFailed(scheduleID, "assignments", err)
	}

	rooms = append(rooms, models.VirtualClassroomPool(s.cfg.VirtualPool)...)
	sess := NewSession(scheduleID, NewTimeSlotIndex(slots), rooms, NewConstraintChecker(constraints))
	s.recon.Rebuild(sess, sections, records)
	s.sessions[scheduleID] = sess

	s.logger.Info("session rebuilt",
		zap.Int64("schedule_id", scheduleID),
		zap.Int("slots", len(slots)),
		zap.Int("classrooms", len(rooms)),
		zap.Int("sections", len(sections)),
		zap.Int("occupied_cells", sess.Grid.Len()),
		zap.Int("available", len(sess.Available)))
	return sess, nil
}

func (s *TimetableService) fetchFailed(scheduleID int64, what string, err error) error {
	s.logger.Error("collection fetch failed",
		zap.Int64("schedule_id", scheduleID),
		zap.String("collection", what),
		zap.Error(err))
	s.notify(models.NotifyError, fmt.Sprintf("loading %s for schedule %d failed", what, scheduleID))
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "fetch "+what)
}

// resolveCourse finds the dragged course: an unplaced section from the
// pool, or the full placed block when a member of it is dragged.
func (s *TimetableService) resolveCourse(sess *Session, courseID int64) (models.CourseSection, error) {
	if section, ok := sess.Available[courseID]; ok {
		return section, nil
	}
	if assignment, ok := sess.Grid.FindBySection(courseID); ok {
		return assignment.Section, nil
	}
	return models.CourseSection{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("course %d not found in schedule %d", courseID, sess.ScheduleID))
}

// flatten decomposes the grid into one save row per underlying
// section.
func (s *TimetableService) flatten(sess *Session) []models.SaveRow {
	var rows []models.SaveRow
	for _, a := range sess.Grid.Assignments() {
		rangeKey := sess.Index.RangeKey(a.StartSlot, a.Span)
		start, end, _ := models.SplitClockRange(rangeKey)
		day := a.Day
		classroomID := a.ClassroomID
		for _, m := range s.combiner.Split(a.Section) {
			member := m
			rows = append(rows, models.SaveRow{
				ID:          sess.RowID[member.ID],
				SectionID:   member.ID,
				Day:         &day,
				StartTime:   &start,
				EndTime:     &end,
				ClassroomID: &classroomID,
				IsOnline:    member.IsOnline,
				Duration:    member.DurationHours,
			})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows
}

// snapshot renders the session in a stable order.
func (s *TimetableService) snapshot(sess *Session) *dto.GridSnapshot {
	snapshot := &dto.GridSnapshot{
		ScheduleID: sess.ScheduleID,
		TimeSlots:  sess.Index.Slots(),
		Available:  sess.AvailableSections(),
	}
	for _, room := range sess.Classrooms {
		snapshot.Classrooms = append(snapshot.Classrooms, room)
	}
	sort.Slice(snapshot.Classrooms, func(i, j int) bool { return snapshot.Classrooms[i].ID > snapshot.Classrooms[j].ID })
	sort.Slice(snapshot.Available, func(i, j int) bool { return snapshot.Available[i].ID < snapshot.Available[j].ID })

	for _, a := range sess.Grid.Assignments() {
		for i := a.StartSlot; i < a.StartSlot+a.Span; i++ {
			slot, ok := sess.Index.Slot(i)
			if !ok {
				continue
			}
			snapshot.Cells = append(snapshot.Cells, dto.GridCell{
				Day:         a.Day,
				ClassroomID: a.ClassroomID,
				SlotKey:     slot.Key(),
				Section:     a.Section,
				Flags:       a.FlagsAt(i),
			})
		}
	}
	sort.Slice(snapshot.Cells, func(i, j int) bool {
		a, b := snapshot.Cells[i], snapshot.Cells[j]
		if a.Day != b.Day {
			return dayOrder(a.Day) < dayOrder(b.Day)
		}
		if a.ClassroomID != b.ClassroomID {
			return a.ClassroomID > b.ClassroomID
		}
		return a.SlotKey < b.SlotKey
	})
	return snapshot
}

func dayOrder(day string) int {
	for i, d := range models.Weekdays {
		if d == day {
			return i
		}
	}
	return len(models.Weekdays)
}

func (s *TimetableService) notify(level, message string) {
	if s.notifier != nil {
		s.notifier.Notify(level, message)
	}
}

func (s *TimetableService) fetchSlots(ctx context.Context, scheduleID int64) ([]models.TimeSlot, error) {
	key := fmt.Sprintf("timetable:%d:slots", scheduleID)
	var cached []models.TimeSlot
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}
	slots, err := s.slots.ListBySchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, key, slots, s.cfg.CollectionTTL)
	return slots, nil
}

func (s *TimetableService) fetchRooms(ctx context.Context, scheduleID int64) ([]models.Classroom, error) {
	key := fmt.Sprintf("timetable:%d:classrooms", scheduleID)
	var cached []models.Classroom
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}
	rooms, err := s.rooms.ListBySchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, key, rooms, s.cfg.CollectionTTL)
	return rooms, nil
}

func (s *TimetableService) fetchSections(ctx context.Context, scheduleID int64) ([]models.CourseSection, error) {
	key := fmt.Sprintf("timetable:%d:sections", scheduleID)
	var cached []models.CourseSection
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}
	sections, err := s.sections.ListBySchedule(ctx, models.CourseSectionFilter{ScheduleID: scheduleID})
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, key, sections, s.cfg.CollectionTTL)
	return sections, nil
}

func (s *TimetableService) fetchConstraints(ctx context.Context, scheduleID int64) ([]models.InstructorConstraint, error) {
	key := fmt.Sprintf("timetable:%d:constraints", scheduleID)
	var cached []models.InstructorConstraint
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}
	constraints, err := s.constraints.ListBySchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, key, constraints, s.cfg.CollectionTTL)
	return constraints, nil
}

func (s *TimetableService) invalidateCollections(ctx context.Context, scheduleID int64) {
	_ = s.cache.Invalidate(ctx, fmt.Sprintf("timetable:%d:*", scheduleID))
}

// ListSections exposes the filtered section listing for the sidebar
// search.
func (s *TimetableService) ListSections(ctx context.Context, filter models.CourseSectionFilter) ([]models.CourseSection, error) {
	sections, err := s.sections.ListBySchedule(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list sections")
	}
	return sections, nil
}
