package store

import (
	"context"
	"errors"

	"booking-app/internal/domain/accounts"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AccountStore struct {
	db *gorm.DB
}

func NewAccountStore(db *gorm.DB) *AccountStore {
	return &AccountStore{db: db}
}

func (s *AccountStore) GetOrCreateByArtistID(ctx context.Context, artistID uint) (*accounts.Account, error) {
	acct := accounts.Account{ArtistID: artistID}
	err := s.db.WithContext(ctx).
		Where(accounts.Account{ArtistID: artistID}).
		Attrs(accounts.Account{}).
		Clauses(clause.OnConflict{DoNothing: true}).
		FirstOrCreate(&acct).Error
	if err != nil {
		return nil, err
	}
	if acct.ID == 0 {
		// lost a concurrent create race, fetch the winner
		return s.GetByArtistID(ctx, artistID)
	}
	return &acct, nil
}

func (s *AccountStore) GetByArtistID(ctx context.Context, artistID uint) (*accounts.Account, error) {
	var acct accounts.Account
	err := s.db.WithContext(ctx).Where("artist_id = ?", artistID).First(&acct).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &acct, nil
}

func (s *AccountStore) GetByPayableRef(ctx context.Context, ref string) (*accounts.Account, error) {
	var acct accounts.Account
	err := s.db.WithContext(ctx).Where("payable_account_ref = ?", ref).First(&acct).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &acct, nil
}

// SetPayableRef attaches the processor-issued ref, only while none is set.
func (s *AccountStore) SetPayableRef(ctx context.Context, accountID uint, ref string) error {
	res := s.db.WithContext(ctx).Model(&accounts.Account{}).
		Where("id = ? AND payable_account_ref IS NULL", accountID).
		Update("payable_account_ref", ref)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("account already has a payable ref")
	}
	return nil
}

// MarkOnboarded is the conditional update behind the reconciler's account
// path: it matches only while onboarding is still incomplete.
func (s *AccountStore) MarkOnboarded(ctx context.Context, payableRef string) (bool, error) {
	res := s.db.WithContext(ctx).Model(&accounts.Account{}).
		Where("payable_account_ref = ? AND onboarding_complete = ?", payableRef, false).
		Update("onboarding_complete", true)
	return res.RowsAffected > 0, res.Error
}
