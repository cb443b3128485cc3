package handlers

import (
	"net/http"

	"github.com/RafiALMahmud/Job-portal1/internal/services"
	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	svc services.NotificationService
}

func NewNotificationHandler(svc services.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) List(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	page, err := h.svc.List(c.Request.Context(), actor, pageParam(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "", "", page)
}

func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	if err := h.svc.MarkAsRead(c.Request.Context(), actor, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Notification marked as read", "", nil)
}

func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	n, err := h.svc.MarkAllAsRead(c.Request.Context(), actor)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "All notifications marked as read", "", gin.H{"updated": n})
}
