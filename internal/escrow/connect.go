package escrow

import (
	"context"
	"fmt"
)

// ConnectService makes sure an artist has a payable destination account at
// the processor and hands out onboarding links for it.
type ConnectService struct {
	accounts AccountStore
	provider PaymentProvider
}

func NewConnectService(accounts AccountStore, provider PaymentProvider) *ConnectService {
	return &ConnectService{accounts: accounts, provider: provider}
}

// EnsureOnboardingLink returns a fresh onboarding redirect URL for the
// artist, creating the local Account row and the remote payable account on
// first use. Safe to repeat: an artist that already has a remote account
// never gets a second one.
//
// The remote ref is committed locally before the link is generated; if that
// commit fails, the remote account exists with no local reference, which the
// reconciler can later re-link by ref. Committing first keeps that window
// as small as possible.
func (s *ConnectService) EnsureOnboardingLink(ctx context.Context, artistID uint, email string) (string, error) {
	acct, err := s.accounts.GetOrCreateByArtistID(ctx, artistID)
	if err != nil {
		return "", fmt.Errorf("load account for artist %d: %w", artistID, err)
	}

	ref := ""
	if acct.PayableAccountRef != nil {
		ref = *acct.PayableAccountRef
	}
	if ref == "" {
		ref, err = s.provider.CreatePayableAccount(ctx, email)
		if err != nil {
			return "", fmt.Errorf("%w: create payable account: %v", ErrRemoteUnavailable, err)
		}
		if err := s.accounts.SetPayableRef(ctx, acct.ID, ref); err != nil {
			return "", fmt.Errorf("persist payable ref %s: %w", ref, err)
		}
	}

	// Onboarding completion is attested only by the processor, via webhook.
	url, err := s.provider.CreateOnboardingLink(ctx, ref)
	if err != nil {
		return "", fmt.Errorf("%w: create onboarding link: %v", ErrRemoteUnavailable, err)
	}
	return url, nil
}

// Status reports the artist's onboarding progress for the account screen.
func (s *ConnectService) Status(ctx context.Context, artistID uint) (hasRef, complete bool, err error) {
	acct, err := s.accounts.GetByArtistID(ctx, artistID)
	if err != nil {
		return false, false, err
	}
	if acct == nil {
		return false, false, nil
	}
	return acct.PayableAccountRef != nil && *acct.PayableAccountRef != "", acct.OnboardingComplete, nil
}
