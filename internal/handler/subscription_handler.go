package handler

import (
	"crypto/subtle"
	"net/http"

	"basemap/internal/middleware"
	"basemap/internal/service"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	subscriptionSvc *service.SubscriptionService
	webhookSecret   string
}

func NewSubscriptionHandler(subscriptionSvc *service.SubscriptionService, webhookSecret string) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionSvc: subscriptionSvc, webhookSecret: webhookSecret}
}

// Webhook receives RevenueCat billing events. RevenueCat authenticates with
// a static Authorization header configured in its dashboard.
func (h *SubscriptionHandler) Webhook(c *gin.Context) {
	if h.webhookSecret != "" {
		got := c.GetHeader("Authorization")
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.webhookSecret)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid webhook credentials"})
			return
		}
	}
	var payload service.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}
	processed, err := h.subscriptionSvc.HandleWebhook(payload.Event)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"processed": processed})
}

// Restore links a RevenueCat customer id to the caller's account.
func (h *SubscriptionHandler) Restore(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		CustomerID string `json:"customer_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	p, err := h.subscriptionSvc.Restore(userID, req.CustomerID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Purchases restored", gin.H{
		"subscription_status":     p.SubscriptionStatus,
		"subscription_expires_at": p.SubscriptionExpiresAt,
	})
}
