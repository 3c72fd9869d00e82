package accounts

import (
	"time"

	"booking-app/internal/domain/users"
)

// Account holds an artist's link to the payment processor. One row per
// artist, created lazily on the first onboarding attempt and never deleted.
//
// PayableAccountRef is the processor-issued account id. OnboardingComplete
// is only ever flipped by the webhook reconciler: the processor is the sole
// authority on whether onboarding requirements were satisfied.
type Account struct {
	ID       uint `gorm:"primaryKey"`
	ArtistID uint `gorm:"not null;uniqueIndex:idx_accounts_artist_id"`
	Artist   users.User

	PayableAccountRef  *string `gorm:"column:payable_account_ref;uniqueIndex:idx_accounts_payable_account_ref"`
	OnboardingComplete bool    `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Payable reports whether bookings may be created against this account's
// listings. Both conditions are required: a remote ref alone means the
// artist started onboarding but the processor has not confirmed it.
func (a *Account) Payable() bool {
	return a.PayableAccountRef != nil && *a.PayableAccountRef != "" && a.OnboardingComplete
}
