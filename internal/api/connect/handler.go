package connect

import (
	"errors"
	"net/http"

	"booking-app/internal/escrow"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *escrow.ConnectService
}

func NewHandler(svc *escrow.ConnectService) *Handler {
	return &Handler{svc: svc}
}

// POST /connect/onboarding-link
func (h *Handler) CreateOnboardingLink(c *gin.Context) {
	artistID := c.GetUint("user_id")
	if artistID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}
	email := c.GetString("email")

	url, err := h.svc.EnsureOnboardingLink(c.Request.Context(), artistID, email)
	if err != nil {
		if errors.Is(err, escrow.ErrRemoteUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Payment service unavailable, please retry"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start onboarding"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// GET /connect/status
func (h *Handler) Status(c *gin.Context) {
	artistID := c.GetUint("user_id")
	if artistID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	hasRef, complete, err := h.svc.Status(c.Request.Context(), artistID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load onboarding status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"has_payable_account": hasRef,
		"onboarding_complete": complete,
	})
}
