package stripewebhooks

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"booking-app/internal/domain/accounts"
	"booking-app/internal/domain/bookings"
	"booking-app/internal/domain/recon"
	"booking-app/internal/escrow"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75/webhook"
)

const testSecret = "whsec_test_secret"

type memAccountStore struct {
	acct *accounts.Account
}

func (s *memAccountStore) GetOrCreateByArtistID(context.Context, uint) (*accounts.Account, error) {
	return s.acct, nil
}

func (s *memAccountStore) GetByArtistID(context.Context, uint) (*accounts.Account, error) {
	return s.acct, nil
}

func (s *memAccountStore) GetByPayableRef(_ context.Context, ref string) (*accounts.Account, error) {
	if s.acct != nil && s.acct.PayableAccountRef != nil && *s.acct.PayableAccountRef == ref {
		return s.acct, nil
	}
	return nil, nil
}

func (s *memAccountStore) SetPayableRef(context.Context, uint, string) error { return nil }

func (s *memAccountStore) MarkOnboarded(_ context.Context, ref string) (bool, error) {
	if s.acct != nil && s.acct.PayableAccountRef != nil && *s.acct.PayableAccountRef == ref && !s.acct.OnboardingComplete {
		s.acct.OnboardingComplete = true
		return true, nil
	}
	return false, nil
}

type memBookingStore struct {
	booking *bookings.Booking
}

func (s *memBookingStore) Create(_ context.Context, b *bookings.Booking) error { return nil }

func (s *memBookingStore) GetByID(_ context.Context, id uint) (*bookings.Booking, error) {
	if s.booking != nil && s.booking.ID == id {
		return s.booking, nil
	}
	return nil, nil
}

func (s *memBookingStore) GetBySessionRef(_ context.Context, ref string) (*bookings.Booking, error) {
	if s.booking != nil && s.booking.PaymentSessionRef != nil && *s.booking.PaymentSessionRef == ref {
		return s.booking, nil
	}
	return nil, nil
}

func (s *memBookingStore) AttachSessionRef(context.Context, uint, string) error { return nil }

func (s *memBookingStore) MarkInEscrow(_ context.Context, id uint, sessionRef string) (bool, error) {
	if s.booking != nil && s.booking.ID == id && s.booking.FundStatus == bookings.FundPendingPayment {
		s.booking.FundStatus = bookings.FundInEscrow
		if sessionRef != "" {
			s.booking.PaymentSessionRef = &sessionRef
		}
		return true, nil
	}
	return false, nil
}

type memGapStore struct {
	gaps []recon.Gap
}

func (s *memGapStore) Record(_ context.Context, g *recon.Gap) error {
	s.gaps = append(s.gaps, *g)
	return nil
}

func newTestRouter(acct *memAccountStore, book *memBookingStore, gaps *memGapStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(escrow.NewReconciler(acct, book, gaps), testSecret)
	r.POST("/webhook", h.StripeWebhook)
	return r
}

func signedRequest(payload string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(payload))
	now := time.Now()
	sig := webhook.ComputeSignature(now, []byte(payload), testSecret)
	req.Header.Set("Stripe-Signature", fmt.Sprintf("t=%d,v1=%s", now.Unix(), hex.EncodeToString(sig)))
	return req
}

func paymentEventPayload(bookingID uint, sessionRef string) string {
	return fmt.Sprintf(`{
		"id": "evt_pay_1",
		"type": "checkout.session.completed",
		"data": {"object": {
			"id": %q,
			"object": "checkout.session",
			"payment_status": "paid",
			"metadata": {"booking_id": "%d"}
		}}
	}`, sessionRef, bookingID)
}

func TestStripeWebhook_InvalidSignatureMutatesNothing(t *testing.T) {
	ref := "acct_1"
	sess := "cs_1"
	acct := &memAccountStore{acct: &accounts.Account{ID: 1, ArtistID: 7, PayableAccountRef: &ref}}
	book := &memBookingStore{booking: &bookings.Booking{ID: 42, FundStatus: bookings.FundPendingPayment, PaymentSessionRef: &sess}}
	gaps := &memGapStore{}
	r := newTestRouter(acct, book, gaps)

	// well-formed body, bogus signature
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(paymentEventPayload(42, "cs_1")))
	req.Header.Set("Stripe-Signature", "t=123,v1=deadbeef")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if book.booking.FundStatus != bookings.FundPendingPayment {
		t.Fatalf("booking mutated on invalid signature: %s", book.booking.FundStatus)
	}
	if acct.acct.OnboardingComplete {
		t.Fatalf("account mutated on invalid signature")
	}
	if len(gaps.gaps) != 0 {
		t.Fatalf("gap recorded on invalid signature")
	}
}

func TestStripeWebhook_PaymentSucceeded(t *testing.T) {
	sess := "cs_1"
	book := &memBookingStore{booking: &bookings.Booking{ID: 42, FundStatus: bookings.FundPendingPayment, PaymentSessionRef: &sess}}
	r := newTestRouter(&memAccountStore{}, book, &memGapStore{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, signedRequest(paymentEventPayload(42, "cs_1")))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if book.booking.FundStatus != bookings.FundInEscrow {
		t.Fatalf("expected in_escrow, got %s", book.booking.FundStatus)
	}

	// redelivery: still 200, still in_escrow
	w = httptest.NewRecorder()
	r.ServeHTTP(w, signedRequest(paymentEventPayload(42, "cs_1")))
	if w.Code != http.StatusOK {
		t.Fatalf("duplicate delivery: expected 200, got %d", w.Code)
	}
	if book.booking.FundStatus != bookings.FundInEscrow {
		t.Fatalf("duplicate delivery changed status to %s", book.booking.FundStatus)
	}
}

func TestStripeWebhook_UnpaidSessionIgnored(t *testing.T) {
	sess := "cs_1"
	book := &memBookingStore{booking: &bookings.Booking{ID: 42, FundStatus: bookings.FundPendingPayment, PaymentSessionRef: &sess}}
	r := newTestRouter(&memAccountStore{}, book, &memGapStore{})

	payload := `{
		"id": "evt_pay_2",
		"type": "checkout.session.completed",
		"data": {"object": {
			"id": "cs_1",
			"object": "checkout.session",
			"payment_status": "unpaid",
			"metadata": {"booking_id": "42"}
		}}
	}`
	w := httptest.NewRecorder()
	r.ServeHTTP(w, signedRequest(payload))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if book.booking.FundStatus != bookings.FundPendingPayment {
		t.Fatalf("unpaid session must not advance the booking, got %s", book.booking.FundStatus)
	}
}

func TestStripeWebhook_AccountUpdated(t *testing.T) {
	ref := "acct_1"
	acct := &memAccountStore{acct: &accounts.Account{ID: 1, ArtistID: 7, PayableAccountRef: &ref}}
	r := newTestRouter(acct, &memBookingStore{}, &memGapStore{})

	payload := `{
		"id": "evt_acct_1",
		"type": "account.updated",
		"data": {"object": {
			"id": "acct_1",
			"object": "account",
			"charges_enabled": true,
			"payouts_enabled": true,
			"details_submitted": true
		}}
	}`
	w := httptest.NewRecorder()
	r.ServeHTTP(w, signedRequest(payload))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !acct.acct.OnboardingComplete {
		t.Fatalf("expected onboarding_complete=true")
	}
}

func TestStripeWebhook_UnknownBookingRecordsGapAndAcks(t *testing.T) {
	gaps := &memGapStore{}
	r := newTestRouter(&memAccountStore{}, &memBookingStore{}, gaps)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, signedRequest(paymentEventPayload(999, "cs_ghost")))

	if w.Code != http.StatusOK {
		t.Fatalf("unmatched event must still ack, got %d", w.Code)
	}
	if len(gaps.gaps) != 1 {
		t.Fatalf("expected 1 gap, got %d", len(gaps.gaps))
	}
}

func TestStripeWebhook_UnknownEventTypeAcked(t *testing.T) {
	r := newTestRouter(&memAccountStore{}, &memBookingStore{}, &memGapStore{})

	payload := `{"id": "evt_x", "type": "invoice.paid", "data": {"object": {}}}`
	w := httptest.NewRecorder()
	r.ServeHTTP(w, signedRequest(payload))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for unknown event type, got %d", w.Code)
	}
}
