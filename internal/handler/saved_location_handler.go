package handler

import (
	"net/http"

	"basemap/internal/middleware"
	"basemap/internal/service"

	"github.com/gin-gonic/gin"
)

type SavedLocationHandler struct {
	savedSvc *service.SavedLocationService
}

func NewSavedLocationHandler(savedSvc *service.SavedLocationService) *SavedLocationHandler {
	return &SavedLocationHandler{savedSvc: savedSvc}
}

func (h *SavedLocationHandler) Save(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := parseLocationID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	save, err := h.savedSvc.Save(userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Location saved", save)
}

func (h *SavedLocationHandler) Unsave(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := parseLocationID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.savedSvc.Unsave(userID, id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Location removed from saved", nil)
}

func (h *SavedLocationHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit := parsePagination(c, "limit", 20)
	offset := parsePagination(c, "offset", 0)
	list, total, err := h.savedSvc.List(userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{
		"saved_locations": list,
		"total_count":     total,
		"has_more":        total > int64(offset+limit),
	})
}
