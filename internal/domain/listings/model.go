package listings

import (
	"time"

	"booking-app/internal/domain/accounts"
)

// Listing is an act offered by an artist. ListedRate is deliberately free
// text because artists enter ranges ("1,000 - 2,000 AED"); the pricing
// engine owns its interpretation.
type Listing struct {
	ID        uint `gorm:"primaryKey"`
	AccountID uint `gorm:"not null;index:idx_listings_account_id"`
	Account   accounts.Account

	Title      string `gorm:"not null"`
	ListedRate string `gorm:"column:listed_rate"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
