package handler

import (
	"net/http"

	"basemap/internal/middleware"
	"basemap/internal/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileSvc *service.ProfileService
}

func NewProfileHandler(profileSvc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileSvc: profileSvc}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)
	p, err := h.profileSvc.Get(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, p)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req service.UpdateProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	p, err := h.profileSvc.Update(userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Profile updated", p)
}

// RegisterFCMToken stores the caller's device push token.
func (h *ProfileHandler) RegisterFCMToken(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		FCMToken string `json:"fcm_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := h.profileSvc.RegisterFCMToken(userID, req.FCMToken); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "FCM token registered", nil)
}
