package recon

import "time"

// Gap records a verified processor event that could not be matched to a
// local row. It is acknowledged to the processor (so retries stop) but kept
// here for manual follow-up: it may represent money the platform received
// without a matching booking.
type Gap struct {
	ID         uint   `gorm:"primaryKey"`
	EventID    string `gorm:"column:event_id"`
	EventType  string `gorm:"column:event_type;not null"`
	RemoteRef  string `gorm:"column:remote_ref"`
	SessionRef string `gorm:"column:session_ref"`
	Reason     string `gorm:"not null"`
	CreatedAt  time.Time
}
