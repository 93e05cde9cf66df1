package handler

import (
	"net/http"

	"basemap/internal/apperrors"
	"basemap/internal/middleware"
	"basemap/internal/service"

	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	accountSvc *service.AccountService
}

func NewAccountHandler(accountSvc *service.AccountService) *AccountHandler {
	return &AccountHandler{accountSvc: accountSvc}
}

// Delete removes the caller's account and all owned data. The body must
// carry the literal confirmation string to guard against accidental calls.
func (h *AccountHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		Confirmation string `json:"confirmation"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if req.Confirmation != "DELETE" {
		respondError(c, apperrors.InvalidInput("confirmation must be the string DELETE"))
		return
	}
	if err := h.accountSvc.DeleteAccount(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Account deleted", nil)
}
