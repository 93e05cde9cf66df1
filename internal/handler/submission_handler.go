package handler

import (
	"net/http"
	"strconv"

	"basemap/internal/middleware"
	"basemap/internal/repository"
	"basemap/internal/service"

	"github.com/gin-gonic/gin"
)

type SubmissionHandler struct {
	submissionSvc *service.SubmissionService
}

func NewSubmissionHandler(submissionSvc *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionSvc: submissionSvc}
}

func (h *SubmissionHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req service.CreateSubmissionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	sub, err := h.submissionSvc.Create(userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Submission created", sub)
}

// List returns the caller's own submissions, any status.
func (h *SubmissionHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	f := repository.SubmissionFilter{
		UserID:         userID,
		Status:         c.Query("status"),
		SubmissionType: c.Query("submission_type"),
		SortBy:         c.Query("sort_by"),
		SortOrder:      c.Query("sort_order"),
		Limit:          parsePagination(c, "limit", 20),
		Offset:         parsePagination(c, "offset", 0),
	}
	page, err := h.submissionSvc.List(f)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, page)
}

func (h *SubmissionHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)
	view, err := h.submissionSvc.Get(userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, view)
}

func (h *SubmissionHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req service.UpdateSubmissionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	sub, err := h.submissionSvc.Update(userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Submission updated", sub)
}

func (h *SubmissionHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if err := h.submissionSvc.Withdraw(userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Submission withdrawn", nil)
}

// Limits reports the caller's submission quota usage.
func (h *SubmissionHandler) Limits(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limits, err := h.submissionSvc.CheckLimits(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, limits)
}

func parsePagination(c *gin.Context, key string, def int) int {
	v := c.Query(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	if key == "limit" && (n == 0 || n > 100) {
		return def
	}
	return n
}
