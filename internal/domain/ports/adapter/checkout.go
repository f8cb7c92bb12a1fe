package adapter

import (
	"context"

	"property-marketplace/internal/domain/model"
)

// Channel is a payment method category offered to the hosted widget.
type Channel string

const (
	ChannelCard        Channel = "card"
	ChannelMobileMoney Channel = "mobile-money"
)

// Customer carries the payer fields the widget shows on its form.
type Customer struct {
	FirstName string
	LastName  string
	Phone     string
}

// CheckoutOptions is the input to one hosted checkout session. Reference is
// caller-generated and echoed by the provider.
type CheckoutOptions struct {
	PublicKey string
	Reference string
	Email     string
	Amount    float64
	Currency  string
	Channels  []Channel
	Customer  Customer
}

// CheckoutGateway is the hex port for the interactive hosted checkout.
//
// OpenCheckout blocks until the payer completes, defers, or abandons the
// widget and resolves to exactly one CheckoutOutcome:
//   - success always carries a provider reference; a claimed success without
//     one surfaces as an error, never as a success.
//   - pending carries the widget's reference, falling back to
//     opts.Reference when the widget omits one.
//   - cancelled carries opts.Reference since no transaction occurred.
//
// If the provider script cannot be loaded or the widget is unavailable the
// call fails fast with domain.ErrGatewayUnavailable.
type CheckoutGateway interface {
	Name() string
	OpenCheckout(ctx context.Context, opts CheckoutOptions) (model.CheckoutOutcome, error)
}

// PaymentVerifier asks the provider's trusted server-side channel whether a
// reference is genuinely settled. Network and parse failures come back as
// VerifyError outcomes, never as Go errors masquerading as success.
type PaymentVerifier interface {
	Verify(ctx context.Context, reference string) (model.VerificationOutcome, error)
}
