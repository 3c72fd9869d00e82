package escrow

import (
	"context"

	"booking-app/internal/domain/accounts"
	"booking-app/internal/domain/bookings"
	"booking-app/internal/domain/listings"
	"booking-app/internal/domain/recon"
)

// Stores return (nil, nil) when a row does not exist; conditional updates
// report whether they matched so callers can tell an applied transition from
// an idempotent no-op.

type AccountStore interface {
	GetOrCreateByArtistID(ctx context.Context, artistID uint) (*accounts.Account, error)
	GetByArtistID(ctx context.Context, artistID uint) (*accounts.Account, error)
	GetByPayableRef(ctx context.Context, ref string) (*accounts.Account, error)
	SetPayableRef(ctx context.Context, accountID uint, ref string) error
	// MarkOnboarded flips onboarding_complete only while it is still false.
	MarkOnboarded(ctx context.Context, payableRef string) (bool, error)
}

type ListingStore interface {
	// GetByID loads the listing with its owning account.
	GetByID(ctx context.Context, id uint) (*listings.Listing, error)
}

type BookingStore interface {
	Create(ctx context.Context, b *bookings.Booking) error
	GetByID(ctx context.Context, id uint) (*bookings.Booking, error)
	GetBySessionRef(ctx context.Context, ref string) (*bookings.Booking, error)
	AttachSessionRef(ctx context.Context, bookingID uint, ref string) error
	// MarkInEscrow advances fund_status only from pending_payment, and
	// backfills the session ref for drafts whose post-checkout attach
	// failed so the row stays linkable by session.
	MarkInEscrow(ctx context.Context, bookingID uint, sessionRef string) (bool, error)
}

type GapStore interface {
	Record(ctx context.Context, g *recon.Gap) error
}

// Session is a payment-collection session opened at the processor.
type Session struct {
	Ref string
	URL string
}

// SessionParams describes a destination charge: the client pays ClientTotal,
// exactly ArtistNet is earmarked for transfer to DestinationRef, and the
// platform keeps PlatformFee. BookingID rides along as opaque metadata so
// webhook events correlate back without re-deriving amounts.
type SessionParams struct {
	BookingID      uint
	ListingTitle   string
	DestinationRef string
	ArtistNet      int64
	PlatformFee    int64
	ClientTotal    int64
}

// PaymentProvider is the outbound face of the payment processor.
type PaymentProvider interface {
	CreatePayableAccount(ctx context.Context, email string) (string, error)
	CreateOnboardingLink(ctx context.Context, accountRef string) (string, error)
	CreateCheckoutSession(ctx context.Context, p SessionParams) (Session, error)
}
