package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/timetable-api/internal/models"
	"github.com/campushub/timetable-api/pkg/response"
)

type generatorRunner interface {
	Run(ctx context.Context, scheduleID int64) (*models.GenerateResult, error)
}

// GeneratorHandler triggers the external automatic scheduler.
type GeneratorHandler struct {
	service generatorRunner
}

// NewGeneratorHandler constructs the handler.
func NewGeneratorHandler(svc generatorRunner) *GeneratorHandler {
	return &GeneratorHandler{service: svc}
}

// Generate godoc
// @Summary Run the external generator and resynchronise the grid
// @Tags Generator
// @Produce json
// @Param scheduleId path int true "Schedule ID"
// @Success 200 {object} response.Envelope
// @Router /schedules/{scheduleId}/generate [post]
func (h *GeneratorHandler) Generate(c *gin.Context) {
	scheduleID, ok := pathID(c, "scheduleId")
	if !ok {
		return
	}
	result, err := h.service.Run(c.Request.Context(), scheduleID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}
