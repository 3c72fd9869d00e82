package bookings

import (
	"time"

	"booking-app/internal/domain/listings"
	"booking-app/internal/domain/users"
)

// Booking is the single source of truth for payment state. The remote
// payment session it references is disposable; the row is not. Amounts are
// in the smallest currency unit and immutable once FundStatus leaves draft;
// ClientTotalAmount == ArtistNetAmount + PlatformFeeAmount always holds.
type Booking struct {
	ID        uint `gorm:"primaryKey"`
	ListingID uint `gorm:"not null;index:idx_bookings_listing_id"`
	Listing   listings.Listing
	ClientID  uint `gorm:"not null;index:idx_bookings_client_id"`
	Client    users.User

	EventDate time.Time `gorm:"not null"`

	ArtistNetAmount   int64 `gorm:"not null"`
	PlatformFeeAmount int64 `gorm:"not null"`
	ClientTotalAmount int64 `gorm:"not null"`

	PaymentSessionRef *string    `gorm:"column:payment_session_ref;uniqueIndex:idx_bookings_payment_session_ref"`
	FundStatus        FundStatus `gorm:"type:varchar(20);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
