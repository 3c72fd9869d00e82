package escrow

import (
	"context"
	"fmt"
	"log"

	"booking-app/internal/domain/bookings"
	"booking-app/internal/domain/recon"
)

// Reconciler applies verified processor events to local state. Every write
// is a conditional update keyed on the current state, so duplicate and
// out-of-order deliveries collapse into no-ops instead of regressions.
//
// Errors returned here mean "not durably processed yet" and translate into a
// retryable failure at the webhook endpoint. Events that verify but match
// nothing are recorded as reconciliation gaps and acknowledged, so one
// unmatchable event cannot jam the processor's retry queue.
type Reconciler struct {
	accounts AccountStore
	bookings BookingStore
	gaps     GapStore
}

func NewReconciler(accounts AccountStore, bookingStore BookingStore, gaps GapStore) *Reconciler {
	return &Reconciler{accounts: accounts, bookings: bookingStore, gaps: gaps}
}

// AccountUpdated handles the artist-capability event. onboarded reports
// whether the processor now considers the account able to receive funds;
// anything short of that is acknowledged without effect.
func (r *Reconciler) AccountUpdated(ctx context.Context, eventID, payableRef string, onboarded bool) error {
	if payableRef == "" || !onboarded {
		return nil
	}

	acct, err := r.accounts.GetByPayableRef(ctx, payableRef)
	if err != nil {
		return fmt.Errorf("lookup account by ref %s: %w", payableRef, err)
	}
	if acct == nil {
		return r.recordGap(ctx, &recon.Gap{
			EventID:   eventID,
			EventType: "account.updated",
			RemoteRef: payableRef,
			Reason:    "no local account for payable ref",
		})
	}
	if acct.OnboardingComplete {
		// duplicate delivery
		return nil
	}

	applied, err := r.accounts.MarkOnboarded(ctx, payableRef)
	if err != nil {
		return fmt.Errorf("mark account %s onboarded: %w", payableRef, err)
	}
	if applied {
		log.Printf("account %d: onboarding complete (ref %s)", acct.ID, payableRef)
	}
	return nil
}

// PaymentSucceeded moves the correlated booking pending_payment -> in_escrow.
// bookingID comes from the session metadata written at checkout; sessionRef
// is the fallback when metadata is absent. A booking already at or past
// in_escrow is a duplicate delivery and stays where it is.
func (r *Reconciler) PaymentSucceeded(ctx context.Context, eventID string, bookingID uint, sessionRef string) error {
	booking, err := r.findBooking(ctx, bookingID, sessionRef)
	if err != nil {
		return err
	}
	if booking == nil {
		return r.recordGap(ctx, &recon.Gap{
			EventID:    eventID,
			EventType:  "payment_succeeded",
			SessionRef: sessionRef,
			Reason:     fmt.Sprintf("no local booking (metadata booking_id=%d)", bookingID),
		})
	}

	if booking.PaymentSessionRef != nil && sessionRef != "" && *booking.PaymentSessionRef != sessionRef {
		return r.recordGap(ctx, &recon.Gap{
			EventID:    eventID,
			EventType:  "payment_succeeded",
			SessionRef: sessionRef,
			Reason:     fmt.Sprintf("session ref mismatch for booking %d", booking.ID),
		})
	}

	if booking.FundStatus != bookings.FundPendingPayment {
		// duplicate or out-of-order delivery; never move backward
		return nil
	}

	applied, err := r.bookings.MarkInEscrow(ctx, booking.ID, sessionRef)
	if err != nil {
		return fmt.Errorf("mark booking %d in escrow: %w", booking.ID, err)
	}
	if applied {
		log.Printf("booking %d: funds in escrow (session %s)", booking.ID, sessionRef)
	}
	return nil
}

func (r *Reconciler) findBooking(ctx context.Context, bookingID uint, sessionRef string) (*bookings.Booking, error) {
	if bookingID != 0 {
		b, err := r.bookings.GetByID(ctx, bookingID)
		if err != nil {
			return nil, fmt.Errorf("lookup booking %d: %w", bookingID, err)
		}
		if b != nil {
			return b, nil
		}
	}
	if sessionRef != "" {
		b, err := r.bookings.GetBySessionRef(ctx, sessionRef)
		if err != nil {
			return nil, fmt.Errorf("lookup booking by session %s: %w", sessionRef, err)
		}
		return b, nil
	}
	return nil, nil
}

func (r *Reconciler) recordGap(ctx context.Context, g *recon.Gap) error {
	log.Printf("reconciliation gap: %s %s (remote=%s session=%s)", g.EventType, g.Reason, g.RemoteRef, g.SessionRef)
	if err := r.gaps.Record(ctx, g); err != nil {
		// Not durably recorded, let the processor redeliver.
		return fmt.Errorf("record reconciliation gap: %w", err)
	}
	return nil
}
