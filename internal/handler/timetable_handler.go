package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campushub/timetable-api/internal/dto"
	"github.com/campushub/timetable-api/internal/models"
	"github.com/campushub/timetable-api/internal/service"
	appErrors "github.com/campushub/timetable-api/pkg/errors"
	"github.com/campushub/timetable-api/pkg/response"
)

type timetableOperations interface {
	Grid(ctx context.Context, scheduleID int64) (*dto.GridSnapshot, error)
	Place(ctx context.Context, scheduleID int64, req dto.PlaceRequest) (*service.PlacementResult, error)
	Preview(ctx context.Context, scheduleID int64, req dto.PlaceRequest) (*service.PlacementResult, error)
	Remove(ctx context.Context, scheduleID, courseID int64) ([]models.CourseSection, error)
	Save(ctx context.Context, scheduleID int64) (*dto.SaveResult, error)
	Split(ctx context.Context, scheduleID, sectionID int64, req dto.SplitRequest) ([]models.CourseSection, error)
	ListSections(ctx context.Context, filter models.CourseSectionFilter) ([]models.CourseSection, error)
}

// TimetableHandler exposes the grid, placement and save endpoints.
type TimetableHandler struct {
	service timetableOperations
	metrics *service.MetricsService
}

// NewTimetableHandler constructs the handler.
func NewTimetableHandler(svc timetableOperations, metrics *service.MetricsService) *TimetableHandler {
	return &TimetableHandler{service: svc, metrics: metrics}
}

// Grid godoc
// @Summary Get the reconciled weekly grid for a schedule
// @Tags Timetable
// @Produce json
// @Param scheduleId path int true "Schedule ID"
// @Success 200 {object} response.Envelope
// @Router /schedules/{scheduleId}/grid [get]
func (h *TimetableHandler) Grid(c *gin.Context) {
	scheduleID, ok := pathID(c, "scheduleId")
	if !ok {
		return
	}
	snapshot, err := h.service.Grid(c.Request.Context(), scheduleID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snapshot)
}

// Place godoc
// @Summary Place a course onto a grid cell
// @Tags Timetable
// @Accept json
// @Produce json
// @Param scheduleId path int true "Schedule ID"
// @Param payload body dto.PlaceRequest true "Placement intent"
// @Success 200 {object} response.Envelope
// @Router /schedules/{scheduleId}/placements [post]
func (h *TimetableHandler) Place(c *gin.Context) {
	h.handlePlacement(c, h.service.Place, "accepted")
}

// Preview godoc
// @Summary Validate a placement without committing it
// @Tags Timetable
// @Accept json
// @Produce json
// @Param scheduleId path int true "Schedule ID"
// @Param payload body dto.PlaceRequest true "Placement intent"
// @Success 200 {object} response.Envelope
// @Router /schedules/{scheduleId}/placements/preview [post]
func (h *TimetableHandler) Preview(c *gin.Context) {
	h.handlePlacement(c, h.service.Preview, "")
}

func (h *TimetableHandler) handlePlacement(c *gin.Context, apply func(context.Context, int64, dto.PlaceRequest) (*service.PlacementResult, error), outcome string) {
	scheduleID, ok := pathID(c, "scheduleId")
	if !ok {
		return
	}
	var req dto.PlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid placement payload"))
		return
	}
	result, err := apply(c.Request.Context(), scheduleID, req)
	if err != nil {
		if outcome != "" {
			h.metrics.RecordPlacement(appErrors.FromError(err).Code)
		}
		response.Error(c, err)
		return
	}
	if outcome != "" {
		h.metrics.RecordPlacement(outcome)
	}
	response.JSON(c, http.StatusOK, result)
}

// Remove godoc
// @Summary Remove a course from the grid
// @Tags Timetable
// @Produce json
// @Param scheduleId path int true "Schedule ID"
// @Param courseId path int true "Course section ID"
// @Success 200 {object} response.Envelope
// @Router /schedules/{scheduleId}/placements/{courseId} [delete]
func (h *TimetableHandler) Remove(c *gin.Context) {
	scheduleID, ok := pathID(c, "scheduleId")
	if !ok {
		return
	}
	courseID, ok := pathID(c, "courseId")
	if !ok {
		return
	}
	released, err := h.service.Remove(c.Request.Context(), scheduleID, courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"released": released})
}

// Save godoc
// @Summary Persist the grid as flattened assignment rows
// @Tags Timetable
// @Produce json
// @Param scheduleId path int true "Schedule ID"
// @Success 200 {object} response.Envelope
// @Router /schedules/{scheduleId}/save [post]
func (h *TimetableHandler) Save(c *gin.Context) {
	scheduleID, ok := pathID(c, "scheduleId")
	if !ok {
		return
	}
	result, err := h.service.Save(c.Request.Context(), scheduleID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Split godoc
// @Summary Split a section's duration into separately placeable parts
// @Tags Timetable
// @Accept json
// @Produce json
// @Param scheduleId path int true "Schedule ID"
// @Param sectionId path int true "Course section ID"
// @Param payload body dto.SplitRequest true "Part durations"
// @Success 200 {object} response.Envelope
// @Router /schedules/{scheduleId}/sections/{sectionId}/split [post]
func (h *TimetableHandler) Split(c *gin.Context) {
	scheduleID, ok := pathID(c, "scheduleId")
	if !ok {
		return
	}
	sectionID, ok := pathID(c, "sectionId")
	if !ok {
		return
	}
	var req dto.SplitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid split payload"))
		return
	}
	parts, err := h.service.Split(c.Request.Context(), scheduleID, sectionID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"sections": parts})
}

// Sections godoc
// @Summary List a schedule's course sections
// @Tags Timetable
// @Produce json
// @Param scheduleId path int true "Schedule ID"
// @Param search query string false "Match code or title"
// @Param instructor query string false "Match instructor name"
// @Param online query bool false "Filter by delivery mode"
// @Success 200 {object} response.Envelope
// @Router /schedules/{scheduleId}/sections [get]
func (h *TimetableHandler) Sections(c *gin.Context) {
	scheduleID, ok := pathID(c, "scheduleId")
	if !ok {
		return
	}
	filter := models.CourseSectionFilter{
		ScheduleID: scheduleID,
		Search:     c.Query("search"),
		Instructor: c.Query("instructor"),
	}
	if raw := c.Query("online"); raw != "" {
		online, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "online must be a boolean"))
			return
		}
		filter.IsOnline = &online
	}
	sections, err := h.service.ListSections(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"sections": sections})
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, name+" must be an integer"))
		return 0, false
	}
	return id, true
}
