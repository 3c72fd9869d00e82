// Package stripepay is the Stripe Connect implementation of the payment
// provider: express payable accounts, onboarding links and destination-charge
// checkout sessions.
package stripepay

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"booking-app/internal/escrow"

	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/account"
	"github.com/stripe/stripe-go/v75/accountlink"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
)

// remoteTimeout bounds every outbound processor call; past it the call is
// treated as failed and the caller takes the remote-failure path.
const remoteTimeout = 15 * time.Second

type Client struct {
	appURL   string
	currency string
}

func New(secretKey, appURL, currency string) *Client {
	stripe.Key = secretKey
	stripe.SetBackend(stripe.APIBackend, stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		HTTPClient: &http.Client{Timeout: remoteTimeout},
	}))
	return &Client{appURL: appURL, currency: currency}
}

func (c *Client) CreatePayableAccount(ctx context.Context, email string) (string, error) {
	params := &stripe.AccountParams{
		Type:  stripe.String(string(stripe.AccountTypeExpress)),
		Email: stripe.String(email),
		Capabilities: &stripe.AccountCapabilitiesParams{
			CardPayments: &stripe.AccountCapabilitiesCardPaymentsParams{Requested: stripe.Bool(true)},
			Transfers:    &stripe.AccountCapabilitiesTransfersParams{Requested: stripe.Bool(true)},
		},
	}
	params.Context = ctx

	acct, err := account.New(params)
	if err != nil {
		return "", err
	}
	return acct.ID, nil
}

func (c *Client) CreateOnboardingLink(ctx context.Context, accountRef string) (string, error) {
	params := &stripe.AccountLinkParams{
		Account:    stripe.String(accountRef),
		RefreshURL: stripe.String(c.appURL + "/account/onboarding?refresh=1"),
		ReturnURL:  stripe.String(c.appURL + "/account/onboarding?done=1"),
		Type:       stripe.String(string(stripe.AccountLinkTypeAccountOnboarding)),
	}
	params.Context = ctx

	link, err := accountlink.New(params)
	if err != nil {
		return "", err
	}
	return link.URL, nil
}

// CreateCheckoutSession opens a destination charge: the client pays the full
// total, the platform fee stays behind and the rest transfers to the
// artist's account. The booking id travels as session metadata so webhook
// events correlate without re-deriving amounts.
func (c *Client) CreateCheckoutSession(ctx context.Context, p escrow.SessionParams) (escrow.Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(c.appURL + "/bookings?paid=1"),
		CancelURL:  stripe.String(c.appURL + "/bookings?canceled=1"),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(c.currency),
					UnitAmount: stripe.Int64(p.ClientTotal),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(p.ListingTitle),
					},
				},
			},
		},
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			ApplicationFeeAmount: stripe.Int64(p.PlatformFee),
			TransferData: &stripe.CheckoutSessionPaymentIntentDataTransferDataParams{
				Destination: stripe.String(p.DestinationRef),
			},
		},
	}
	params.Context = ctx
	params.AddMetadata("booking_id", strconv.FormatUint(uint64(p.BookingID), 10))

	s, err := checkoutsession.New(params)
	if err != nil {
		return escrow.Session{}, err
	}
	return escrow.Session{Ref: s.ID, URL: s.URL}, nil
}
