package store

import (
	"context"
	"errors"

	"booking-app/internal/domain/bookings"

	"gorm.io/gorm"
)

type BookingStore struct {
	db *gorm.DB
}

func NewBookingStore(db *gorm.DB) *BookingStore {
	return &BookingStore{db: db}
}

func (s *BookingStore) Create(ctx context.Context, b *bookings.Booking) error {
	return s.db.WithContext(ctx).Create(b).Error
}

func (s *BookingStore) GetByID(ctx context.Context, id uint) (*bookings.Booking, error) {
	var b bookings.Booking
	err := s.db.WithContext(ctx).Preload("Listing").Preload("Listing.Account").First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *BookingStore) GetBySessionRef(ctx context.Context, ref string) (*bookings.Booking, error) {
	var b bookings.Booking
	err := s.db.WithContext(ctx).Where("payment_session_ref = ?", ref).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *BookingStore) AttachSessionRef(ctx context.Context, bookingID uint, ref string) error {
	return s.db.WithContext(ctx).Model(&bookings.Booking{}).
		Where("id = ?", bookingID).
		Update("payment_session_ref", ref).Error
}

// MarkInEscrow is a single-row compare-and-set: the status moves only from
// pending_payment, so duplicate webhook deliveries match zero rows. The
// session ref is written in the same update; a draft whose attach failed at
// checkout gets it backfilled here.
func (s *BookingStore) MarkInEscrow(ctx context.Context, bookingID uint, sessionRef string) (bool, error) {
	updates := map[string]interface{}{"fund_status": bookings.FundInEscrow}
	if sessionRef != "" {
		updates["payment_session_ref"] = sessionRef
	}
	res := s.db.WithContext(ctx).Model(&bookings.Booking{}).
		Where("id = ? AND fund_status = ?", bookingID, bookings.FundPendingPayment).
		Updates(updates)
	return res.RowsAffected > 0, res.Error
}

func (s *BookingStore) ListByClientID(ctx context.Context, clientID uint) ([]bookings.Booking, error) {
	var out []bookings.Booking
	err := s.db.WithContext(ctx).Preload("Listing").
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}
