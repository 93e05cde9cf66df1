package handler

import (
	"net/http"

	"basemap/internal/middleware"
	"basemap/internal/service"

	"github.com/gin-gonic/gin"
)

type LogbookHandler struct {
	logbookSvc *service.LogbookService
}

func NewLogbookHandler(logbookSvc *service.LogbookService) *LogbookHandler {
	return &LogbookHandler{logbookSvc: logbookSvc}
}

func (h *LogbookHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req service.LogbookEntryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	entry, err := h.logbookSvc.Create(userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Logbook entry created", entry)
}

func (h *LogbookHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit := parsePagination(c, "limit", 50)
	offset := parsePagination(c, "offset", 0)
	list, total, err := h.logbookSvc.List(userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{
		"entries":     list,
		"total_count": total,
		"has_more":    total > int64(offset+limit),
	})
}

func (h *LogbookHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req service.LogbookEntryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	entry, err := h.logbookSvc.Update(userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Logbook entry updated", entry)
}

func (h *LogbookHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if err := h.logbookSvc.Delete(userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Logbook entry deleted", nil)
}
