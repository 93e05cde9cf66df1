package handler

import (
	"net/http"

	"basemap/internal/apperrors"
	"basemap/internal/domain"
	"basemap/internal/middleware"
	"basemap/internal/repository"
	"basemap/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler groups the moderation surface: the review queue, direct
// location management and role grants.
type AdminHandler struct {
	submissionSvc *service.SubmissionService
	locationSvc   *service.LocationService
	profileRepo   *repository.ProfileRepository
}

func NewAdminHandler(
	submissionSvc *service.SubmissionService,
	locationSvc *service.LocationService,
	profileRepo *repository.ProfileRepository,
) *AdminHandler {
	return &AdminHandler{
		submissionSvc: submissionSvc,
		locationSvc:   locationSvc,
		profileRepo:   profileRepo,
	}
}

// ListSubmissions returns submissions across all users, with the per-status
// summary for the queue header.
func (h *AdminHandler) ListSubmissions(c *gin.Context) {
	f := repository.SubmissionFilter{
		UserID:         c.Query("user_id"),
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
	summary, err := h.submissionSvc.Summary()
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{
		"submissions": page.Submissions,
		"total_count": page.TotalCount,
		"has_more":    page.HasMore,
		"summary":     summary,
	})
}

// ReviewSubmission approves or rejects a pending submission, with optional
// field overrides applied to the materialized location.
func (h *AdminHandler) ReviewSubmission(c *gin.Context) {
	reviewerID := middleware.GetUserID(c)
	var req service.ReviewInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	result, err := h.submissionSvc.Review(reviewerID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	data := gin.H{"submission": result.Submission}
	if result.CreatedLocation != nil {
		data["location"] = result.CreatedLocation
	}
	if result.UpdatedLocation != nil {
		data["location"] = result.UpdatedLocation
	}
	respondMessage(c, http.StatusOK, result.Message, data)
}

// CreateLocation inserts a location directly, outside the submission flow.
func (h *AdminHandler) CreateLocation(c *gin.Context) {
	adminID := middleware.GetUserID(c)
	var req service.CreateLocationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	loc, err := h.locationSvc.Create(adminID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Location created", loc)
}

// UpdateLocation edits a location row directly, outside the submission flow.
func (h *AdminHandler) UpdateLocation(c *gin.Context) {
	adminID := middleware.GetUserID(c)
	id, err := parseLocationID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var req service.AdminUpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	loc, err := h.locationSvc.Update(adminID, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Location updated", loc)
}

// DeleteLocation hard-deletes a location and reports dangling references.
func (h *AdminHandler) DeleteLocation(c *gin.Context) {
	id, err := parseLocationID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	result, err := h.locationSvc.Delete(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Location deleted", result)
}

// SetRole grants or revokes moderation roles. Superuser only, and the
// SUPERUSER role itself is not grantable over the API.
func (h *AdminHandler) SetRole(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id" binding:"required"`
		Role   string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if req.Role != domain.RoleUser && req.Role != domain.RoleAdmin {
		respondError(c, apperrors.InvalidInput("role must be USER or ADMIN"))
		return
	}
	p, err := h.profileRepo.GetByID(req.UserID)
	if err != nil {
		respondError(c, apperrors.Upstream("failed to fetch profile", err))
		return
	}
	if p == nil {
		respondError(c, apperrors.NotFound("profile not found"))
		return
	}
	if p.Role == domain.RoleSuperuser {
		respondError(c, apperrors.Forbidden("cannot change a superuser's role"))
		return
	}
	if err := h.profileRepo.Update(req.UserID, map[string]interface{}{"role": req.Role}); err != nil {
		respondError(c, apperrors.Upstream("failed to update role", err))
		return
	}
	respondMessage(c, http.StatusOK, "Role updated", gin.H{"user_id": req.UserID, "role": req.Role})
}
