package payments

import (
	"context"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"
)

// Gateway is the narrow slice of the payment provider's API this service
// uses. Constructed once at startup and injected; no package-level key.
type Gateway interface {
	// FindCustomerByEmail returns the first customer matching the email, or
	// nil when none exists.
	FindCustomerByEmail(ctx context.Context, email string) (*stripe.Customer, error)
	UpdateCustomer(ctx context.Context, id string, params *stripe.CustomerParams) (*stripe.Customer, error)
	CreateCustomer(ctx context.Context, params *stripe.CustomerParams) (*stripe.Customer, error)
	CreateIntent(ctx context.Context, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	ConfirmIntent(ctx context.Context, id string, params *stripe.PaymentIntentConfirmParams) (*stripe.PaymentIntent, error)
}

type stripeGateway struct {
	api *client.API
}

// NewStripeGateway builds a Gateway backed by the Stripe SDK.
func NewStripeGateway(secretKey string) Gateway {
	return &stripeGateway{api: client.New(secretKey, nil)}
}

func (g *stripeGateway) FindCustomerByEmail(ctx context.Context, email string) (*stripe.Customer, error) {
	params := &stripe.CustomerListParams{Email: stripe.String(email)}
	params.Context = ctx
	params.Limit = stripe.Int64(1)

	it := g.api.Customers.List(params)
	if it.Next() {
		return it.Customer(), nil
	}
	return nil, it.Err()
}

func (g *stripeGateway) UpdateCustomer(ctx context.Context, id string, params *stripe.CustomerParams) (*stripe.Customer, error) {
	params.Context = ctx
	return g.api.Customers.Update(id, params)
}

func (g *stripeGateway) CreateCustomer(ctx context.Context, params *stripe.CustomerParams) (*stripe.Customer, error) {
	params.Context = ctx
	return g.api.Customers.New(params)
}

func (g *stripeGateway) CreateIntent(ctx context.Context, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	params.Context = ctx
	return g.api.PaymentIntents.New(params)
}

func (g *stripeGateway) ConfirmIntent(ctx context.Context, id string, params *stripe.PaymentIntentConfirmParams) (*stripe.PaymentIntent, error) {
	params.Context = ctx
	return g.api.PaymentIntents.Confirm(id, params)
}
