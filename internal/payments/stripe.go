package payments

import (
	"context"

	stripe "github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
)

// StripeClient is a thin wrapper around stripe-go for collecting the
// dispatch service fee a settlement produces.
type StripeClient struct{}

// NewStripeClient initializes the stripe client with the given API key.
func NewStripeClient(apiKey string) *StripeClient {
	stripe.Key = apiKey
	return &StripeClient{}
}

// CollectFee opens a manual-capture PaymentIntent for the fee amount (in
// cents) so the charge can be reviewed before it is finalized. It returns
// the PaymentIntent ID on success.
func (s *StripeClient) CollectFee(ctx context.Context, amountCents int64, currency, customerID, description string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
	}
	if customerID != "" {
		params.Customer = stripe.String(customerID)
	}
	if description != "" {
		params.Description = stripe.String(description)
	}
	params.CaptureMethod = stripe.String(string(stripe.PaymentIntentCaptureMethodManual))
	pi, err := paymentintent.New(params)
	if err != nil {
		return "", err
	}
	return pi.ID, nil
}

// Capture finalizes a previously-opened fee PaymentIntent.
func (s *StripeClient) Capture(ctx context.Context, paymentIntentID string) error {
	_, err := paymentintent.Capture(paymentIntentID, nil)
	return err
}

// Release cancels an open fee PaymentIntent without charging.
func (s *StripeClient) Release(ctx context.Context, paymentIntentID string) error {
	_, err := paymentintent.Cancel(paymentIntentID, nil)
	return err
}
