package handler

import (
	"net/http"
	"strconv"

	"basemap/internal/apperrors"
	"basemap/internal/middleware"
	"basemap/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notifSvc *service.NotificationService
}

func NewNotificationHandler(notifSvc *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifSvc: notifSvc}
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit := parsePagination(c, "limit", 20)
	offset := parsePagination(c, "offset", 0)
	list, total, err := h.notifSvc.List(userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{
		"notifications": list,
		"total_count":   total,
		"has_more":      total > int64(offset+limit),
	})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, apperrors.InvalidInput("invalid notification id"))
		return
	}
	if err := h.notifSvc.MarkRead(userID, uint(id)); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Notification marked read", nil)
}
