package store

import (
	"context"
	"errors"

	"booking-app/internal/domain/listings"

	"gorm.io/gorm"
)

type ListingStore struct {
	db *gorm.DB
}

func NewListingStore(db *gorm.DB) *ListingStore {
	return &ListingStore{db: db}
}

func (s *ListingStore) GetByID(ctx context.Context, id uint) (*listings.Listing, error) {
	var l listings.Listing
	err := s.db.WithContext(ctx).Preload("Account").First(&l, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *ListingStore) Create(ctx context.Context, l *listings.Listing) error {
	return s.db.WithContext(ctx).Create(l).Error
}

func (s *ListingStore) List(ctx context.Context) ([]listings.Listing, error) {
	var out []listings.Listing
	err := s.db.WithContext(ctx).Preload("Account").Order("created_at DESC").Find(&out).Error
	return out, err
}

func (s *ListingStore) ListByAccountID(ctx context.Context, accountID uint) ([]listings.Listing, error) {
	var out []listings.Listing
	err := s.db.WithContext(ctx).Where("account_id = ?", accountID).Order("created_at DESC").Find(&out).Error
	return out, err
}
