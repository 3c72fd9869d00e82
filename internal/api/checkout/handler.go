package checkout

import (
	"errors"
	"net/http"
	"time"

	"booking-app/internal/escrow"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *escrow.CheckoutService
}

func NewHandler(svc *escrow.CheckoutService) *Handler {
	return &Handler{svc: svc}
}

// POST /create-checkout-session
func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	var body struct {
		ListingID uint   `json:"listing_id"`
		EventDate string `json:"event_date"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.ListingID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid listing_id"})
		return
	}

	eventDate, err := time.Parse("2006-01-02", body.EventDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "event_date must be YYYY-MM-DD"})
		return
	}

	clientID := c.GetUint("user_id")
	if clientID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	res, err := h.svc.OpenCheckout(c.Request.Context(), escrow.OpenCheckoutInput{
		ClientID:  clientID,
		ListingID: body.ListingID,
		EventDate: eventDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, escrow.ErrListingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		case errors.Is(err, escrow.ErrArtistNotPayable):
			c.JSON(http.StatusConflict, gin.H{"error": "Artist is not yet able to receive payments"})
		case errors.Is(err, escrow.ErrRemoteUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Payment service unavailable, please retry"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": res.SessionURL, "booking_id": res.BookingID})
}
