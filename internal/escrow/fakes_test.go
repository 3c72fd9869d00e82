package escrow

import (
	"context"
	"errors"
	"fmt"

	"booking-app/internal/domain/accounts"
	"booking-app/internal/domain/bookings"
	"booking-app/internal/domain/listings"
	"booking-app/internal/domain/recon"
)

var errStoreDown = errors.New("store down")

type fakeAccountStore struct {
	byID    map[uint]*accounts.Account
	nextID  uint
	failSet bool
}

func newFakeAccountStore(existing ...*accounts.Account) *fakeAccountStore {
	s := &fakeAccountStore{byID: map[uint]*accounts.Account{}, nextID: 1}
	for _, a := range existing {
		if a.ID == 0 {
			a.ID = s.nextID
		}
		s.byID[a.ID] = a
		if a.ID >= s.nextID {
			s.nextID = a.ID + 1
		}
	}
	return s
}

func (s *fakeAccountStore) GetOrCreateByArtistID(_ context.Context, artistID uint) (*accounts.Account, error) {
	for _, a := range s.byID {
		if a.ArtistID == artistID {
			return a, nil
		}
	}
	a := &accounts.Account{ID: s.nextID, ArtistID: artistID}
	s.nextID++
	s.byID[a.ID] = a
	return a, nil
}

func (s *fakeAccountStore) GetByArtistID(_ context.Context, artistID uint) (*accounts.Account, error) {
	for _, a := range s.byID {
		if a.ArtistID == artistID {
			return a, nil
		}
	}
	return nil, nil
}

func (s *fakeAccountStore) GetByPayableRef(_ context.Context, ref string) (*accounts.Account, error) {
	for _, a := range s.byID {
		if a.PayableAccountRef != nil && *a.PayableAccountRef == ref {
			return a, nil
		}
	}
	return nil, nil
}

func (s *fakeAccountStore) SetPayableRef(_ context.Context, accountID uint, ref string) error {
	if s.failSet {
		return errStoreDown
	}
	a, ok := s.byID[accountID]
	if !ok {
		return errStoreDown
	}
	a.PayableAccountRef = &ref
	return nil
}

func (s *fakeAccountStore) MarkOnboarded(_ context.Context, payableRef string) (bool, error) {
	for _, a := range s.byID {
		if a.PayableAccountRef != nil && *a.PayableAccountRef == payableRef && !a.OnboardingComplete {
			a.OnboardingComplete = true
			return true, nil
		}
	}
	return false, nil
}

type fakeListingStore struct {
	byID map[uint]*listings.Listing
}

func (s *fakeListingStore) GetByID(_ context.Context, id uint) (*listings.Listing, error) {
	return s.byID[id], nil
}

type fakeBookingStore struct {
	byID       map[uint]*bookings.Booking
	nextID     uint
	failCreate bool
	failAttach bool
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{byID: map[uint]*bookings.Booking{}, nextID: 1}
}

func (s *fakeBookingStore) Create(_ context.Context, b *bookings.Booking) error {
	if s.failCreate {
		return errStoreDown
	}
	b.ID = s.nextID
	s.nextID++
	copied := *b
	s.byID[b.ID] = &copied
	return nil
}

func (s *fakeBookingStore) GetByID(_ context.Context, id uint) (*bookings.Booking, error) {
	b, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (s *fakeBookingStore) GetBySessionRef(_ context.Context, ref string) (*bookings.Booking, error) {
	for _, b := range s.byID {
		if b.PaymentSessionRef != nil && *b.PaymentSessionRef == ref {
			copied := *b
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeBookingStore) AttachSessionRef(_ context.Context, bookingID uint, ref string) error {
	if s.failAttach {
		return errStoreDown
	}
	b, ok := s.byID[bookingID]
	if !ok {
		return errStoreDown
	}
	b.PaymentSessionRef = &ref
	return nil
}

func (s *fakeBookingStore) MarkInEscrow(_ context.Context, bookingID uint, sessionRef string) (bool, error) {
	b, ok := s.byID[bookingID]
	if !ok || b.FundStatus != bookings.FundPendingPayment {
		return false, nil
	}
	b.FundStatus = bookings.FundInEscrow
	if sessionRef != "" {
		b.PaymentSessionRef = &sessionRef
	}
	return true, nil
}

type fakeGapStore struct {
	gaps []recon.Gap
	fail bool
}

func (s *fakeGapStore) Record(_ context.Context, g *recon.Gap) error {
	if s.fail {
		return errStoreDown
	}
	s.gaps = append(s.gaps, *g)
	return nil
}

type fakeProvider struct {
	accountsCreated int
	sessionsCreated int
	sessionParams   []SessionParams

	failAccount bool
	failLink    bool
	failSession bool
}

func (p *fakeProvider) CreatePayableAccount(_ context.Context, email string) (string, error) {
	if p.failAccount {
		return "", errors.New("processor timeout")
	}
	p.accountsCreated++
	return fmt.Sprintf("acct_fake_%d", p.accountsCreated), nil
}

func (p *fakeProvider) CreateOnboardingLink(_ context.Context, accountRef string) (string, error) {
	if p.failLink {
		return "", errors.New("processor timeout")
	}
	return "https://connect.example/onboard/" + accountRef, nil
}

func (p *fakeProvider) CreateCheckoutSession(_ context.Context, params SessionParams) (Session, error) {
	if p.failSession {
		return Session{}, errors.New("processor timeout")
	}
	p.sessionsCreated++
	p.sessionParams = append(p.sessionParams, params)
	ref := fmt.Sprintf("cs_fake_%d", p.sessionsCreated)
	return Session{Ref: ref, URL: "https://pay.example/" + ref}, nil
}

func strPtr(s string) *string { return &s }
