package escrow

import "errors"

var (
	// ErrArtistNotPayable is a hard business rule: a completed payment
	// cannot be routed to a destination that cannot legally receive funds.
	ErrArtistNotPayable = errors.New("artist is not yet able to receive payouts")

	ErrListingNotFound = errors.New("listing not found")
	ErrAccountNotFound = errors.New("account not found")
	ErrBookingNotFound = errors.New("booking not found")

	// ErrRemoteUnavailable wraps processor timeouts and outages. Callers may
	// retry; any local draft written before the remote call persists.
	ErrRemoteUnavailable = errors.New("payment service unavailable")
)
