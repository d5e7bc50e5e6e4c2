package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/timetable-api/internal/models"
	"github.com/campushub/timetable-api/pkg/response"
)

type noticeStore interface {
	Active() []models.Notification
	Dismiss(id string)
}

// NotificationHandler exposes the transient notices.
type NotificationHandler struct {
	service noticeStore
}

// NewNotificationHandler constructs the handler.
func NewNotificationHandler(svc noticeStore) *NotificationHandler {
	return &NotificationHandler{service: svc}
}

// List godoc
// @Summary List active notices
// @Tags Notifications
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{"notifications": h.service.Active()})
}

// Dismiss godoc
// @Summary Dismiss a notice ahead of its expiry timer
// @Tags Notifications
// @Param id path string true "Notification ID"
// @Success 204
// @Router /notifications/{id} [delete]
func (h *NotificationHandler) Dismiss(c *gin.Context) {
	h.service.Dismiss(c.Param("id"))
	response.NoContent(c)
}
