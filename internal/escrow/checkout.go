package escrow

import (
	"context"
	"fmt"
	"log"
	"time"

	"booking-app/internal/domain/bookings"
	"booking-app/internal/pricing"
)

// CheckoutService is the write path: it validates preconditions, persists a
// draft booking, opens a payment-collection session and links the two.
type CheckoutService struct {
	listings ListingStore
	bookings BookingStore
	provider PaymentProvider
}

func NewCheckoutService(listings ListingStore, bookingStore BookingStore, provider PaymentProvider) *CheckoutService {
	return &CheckoutService{listings: listings, bookings: bookingStore, provider: provider}
}

type OpenCheckoutInput struct {
	ClientID  uint
	ListingID uint
	EventDate time.Time
}

type OpenCheckoutResult struct {
	BookingID  uint
	SessionURL string
}

// OpenCheckout creates a booking for the listing and returns the session
// redirect URL. The draft booking is made durable BEFORE the remote call so
// a local record of intent survives a processor failure; if the remote call
// then fails, the booking stays pending_payment with no session ref. Such
// dangling drafts carry no financial obligation and are swept externally.
func (s *CheckoutService) OpenCheckout(ctx context.Context, in OpenCheckoutInput) (OpenCheckoutResult, error) {
	listing, err := s.listings.GetByID(ctx, in.ListingID)
	if err != nil {
		return OpenCheckoutResult{}, fmt.Errorf("load listing %d: %w", in.ListingID, err)
	}
	if listing == nil {
		return OpenCheckoutResult{}, ErrListingNotFound
	}
	if !listing.Account.Payable() {
		return OpenCheckoutResult{}, ErrArtistNotPayable
	}

	q := pricing.ForRate(listing.ListedRate)

	booking := &bookings.Booking{
		ListingID:         listing.ID,
		ClientID:          in.ClientID,
		EventDate:         in.EventDate,
		ArtistNetAmount:   q.ArtistNet,
		PlatformFeeAmount: q.PlatformFee,
		ClientTotalAmount: q.ClientTotal,
		FundStatus:        bookings.FundPendingPayment,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		// No draft, no remote call.
		return OpenCheckoutResult{}, fmt.Errorf("persist draft booking: %w", err)
	}

	sess, err := s.provider.CreateCheckoutSession(ctx, SessionParams{
		BookingID:      booking.ID,
		ListingTitle:   listing.Title,
		DestinationRef: *listing.Account.PayableAccountRef,
		ArtistNet:      q.ArtistNet,
		PlatformFee:    q.PlatformFee,
		ClientTotal:    q.ClientTotal,
	})
	if err != nil {
		return OpenCheckoutResult{}, fmt.Errorf("%w: create checkout session for booking %d: %v", ErrRemoteUnavailable, booking.ID, err)
	}

	if err := s.bookings.AttachSessionRef(ctx, booking.ID, sess.Ref); err != nil {
		// The remote session exists and already carries the booking id in its
		// metadata, so the webhook path can still correlate. Log, don't fail.
		log.Printf("booking %d: failed to attach session ref %s: %v", booking.ID, sess.Ref, err)
	}

	return OpenCheckoutResult{BookingID: booking.ID, SessionURL: sess.URL}, nil
}
