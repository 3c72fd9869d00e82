package stripewebhooks

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"

	"booking-app/internal/escrow"
	"booking-app/internal/infra/stripepay"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/webhook"
)

// Handler is the public, unauthenticated webhook endpoint. The payload
// signature is the sole authentication: nothing is processed before it
// verifies. Handlers return 200 once an event is durably applied or
// identified as a no-op so the processor stops redelivering, and 500 only
// when a local write failed and a retry can succeed.
type Handler struct {
	reconciler     *escrow.Reconciler
	endpointSecret string
}

func NewHandler(reconciler *escrow.Reconciler, endpointSecret string) *Handler {
	return &Handler{reconciler: reconciler, endpointSecret: endpointSecret}
}

func (h *Handler) StripeWebhook(c *gin.Context) {
	if h.endpointSecret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "STRIPE_WEBHOOK_SECRET not configured"})
		return
	}

	payload, err := readStripeBody(c, 65536)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		c.GetHeader("Stripe-Signature"),
		h.endpointSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		log.Println("stripe signature verification failed:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature verification failed"})
		return
	}

	switch event.Type {
	case "account.updated":
		var acct stripe.Account
		if err := json.Unmarshal(event.Data.Raw, &acct); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse account"})
			return
		}
		err := h.reconciler.AccountUpdated(c.Request.Context(), event.ID, acct.ID, stripepay.AccountOnboarded(&acct))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "received"})
		return

	case "checkout.session.completed", "checkout.session.async_payment_succeeded":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse session"})
			return
		}
		if session.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
			// completed with async payment still pending; the
			// async_payment_succeeded event will follow
			c.JSON(http.StatusOK, gin.H{"status": "ignored"})
			return
		}
		err := h.reconciler.PaymentSucceeded(c.Request.Context(), event.ID, bookingIDFromMetadata(session.Metadata), session.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "received"})
		return

	default:
		// Acknowledge unknown events to avoid retries
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}
}

func bookingIDFromMetadata(md map[string]string) uint {
	if md == nil {
		return 0
	}
	id, err := strconv.ParseUint(md["booking_id"], 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}

func readStripeBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
