package stripepay

import "github.com/stripe/stripe-go/v75"

// AccountOnboarded reports whether an account.updated payload means the
// artist finished onboarding. All three must hold before the account can
// legally receive the destination side of a charge.
func AccountOnboarded(a *stripe.Account) bool {
	return a.ChargesEnabled && a.PayoutsEnabled && a.DetailsSubmitted
}
