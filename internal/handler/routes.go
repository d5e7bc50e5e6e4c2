package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/campushub/timetable-api/internal/middleware"
)

// Handlers bundles everything route registration needs.
type Handlers struct {
	Timetable     *TimetableHandler
	Generator     *GeneratorHandler
	Export        *ExportHandler
	Notifications *NotificationHandler
	Metrics       *MetricsHandler
	JWTSecret     string
}

// RegisterRoutes wires the API surface onto the engine.
func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.GET("/metrics", h.Metrics.Scrape)

	api := r.Group("/api/v1")
	api.Use(middleware.JWT(h.JWTSecret))

	api.GET("/metrics/summary", h.Metrics.Summary)

	api.GET("/notifications", h.Notifications.List)
	api.DELETE("/notifications/:id", h.Notifications.Dismiss)

	schedules := api.Group("/schedules/:scheduleId")
	{
		schedules.GET("/grid", h.Timetable.Grid)
		schedules.GET("/sections", h.Timetable.Sections)
		schedules.POST("/sections/:sectionId/split", h.Timetable.Split)
		schedules.POST("/placements", h.Timetable.Place)
		schedules.POST("/placements/preview", h.Timetable.Preview)
		schedules.DELETE("/placements/:courseId", h.Timetable.Remove)
		schedules.POST("/save", h.Timetable.Save)
		schedules.POST("/generate", h.Generator.Generate)
		schedules.GET("/export", h.Export.Export)
	}
}
