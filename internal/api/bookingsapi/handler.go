// Package bookingsapi is the read side clients poll while the webhook path
// settles a payment: the committed fund_status is the only signal of escrow
// confirmation.
package bookingsapi

import (
	"net/http"
	"strconv"

	"booking-app/internal/domain/bookings"
	"booking-app/internal/store"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	bookings *store.BookingStore
}

func NewHandler(bookingStore *store.BookingStore) *Handler {
	return &Handler{bookings: bookingStore}
}

type bookingResponse struct {
	ID                uint    `json:"id"`
	ListingID         uint    `json:"listing_id"`
	ListingTitle      string  `json:"listing_title"`
	EventDate         string  `json:"event_date"`
	ArtistNetAmount   int64   `json:"artist_net_amount"`
	PlatformFeeAmount int64   `json:"platform_fee_amount"`
	ClientTotalAmount int64   `json:"client_total_amount"`
	FundStatus        string  `json:"fund_status"`
	PaymentSessionRef *string `json:"payment_session_ref,omitempty"`
}

func toResponse(b *bookings.Booking) bookingResponse {
	return bookingResponse{
		ID:                b.ID,
		ListingID:         b.ListingID,
		ListingTitle:      b.Listing.Title,
		EventDate:         b.EventDate.Format("2006-01-02"),
		ArtistNetAmount:   b.ArtistNetAmount,
		PlatformFeeAmount: b.PlatformFeeAmount,
		ClientTotalAmount: b.ClientTotalAmount,
		FundStatus:        string(b.FundStatus),
		PaymentSessionRef: b.PaymentSessionRef,
	}
}

// GET /bookings/:id — visible to the booking's client and the listing's artist.
func (h *Handler) GetBooking(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking id"})
		return
	}

	b, err := h.bookings.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load booking"})
		return
	}
	if b == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	if b.ClientID != userID && b.Listing.Account.ArtistID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	c.JSON(http.StatusOK, toResponse(b))
}

// GET /bookings — the caller's bookings as a client.
func (h *Handler) ListMyBookings(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	list, err := h.bookings.ListByClientID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load bookings"})
		return
	}

	out := make([]bookingResponse, 0, len(list))
	for i := range list {
		out = append(out, toResponse(&list[i]))
	}
	c.JSON(http.StatusOK, out)
}
