package handler

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/campushub/timetable-api/internal/service"
	"github.com/campushub/timetable-api/pkg/response"
)

type exporter interface {
	Export(ctx context.Context, scheduleID int64, format string) (*service.ExportFile, error)
}

// ExportHandler streams rendered schedule exports.
type ExportHandler struct {
	service exporter
}

// NewExportHandler constructs the handler.
func NewExportHandler(svc exporter) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Export godoc
// @Summary Export the schedule as CSV or PDF
// @Tags Export
// @Produce octet-stream
// @Param scheduleId path int true "Schedule ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Router /schedules/{scheduleId}/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	scheduleID, ok := pathID(c, "scheduleId")
	if !ok {
		return
	}
	file, err := h.service.Export(c.Request.Context(), scheduleID, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(200, file.ContentType, file.Data)
}
