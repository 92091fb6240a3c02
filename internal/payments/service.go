package payments

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"regexp"

	"github.com/stripe/stripe-go/v74"

	"storefront/internal/logging"
	"storefront/internal/models"
)

var (
	pinCodeRegex = regexp.MustCompile(`^[0-9]{6}$`)
	phoneRegex   = regexp.MustCompile(`^\+?[0-9\s\-()]{10,15}$`)
)

// IntentResult is the client-facing outcome of a successful intent creation.
type IntentResult struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
	CustomerID      string `json:"customerId"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
}

// IntentService validates a purchase request, upserts the buyer's customer
// record by email and creates a payment intent scoped to it. One customer
// mutation and one intent per call, no retries.
type IntentService struct {
	gateway  Gateway
	currency string
	country  string
	log      *slog.Logger
}

func NewIntentService(gateway Gateway, currency, country string) *IntentService {
	return &IntentService{
		gateway:  gateway,
		currency: currency,
		country:  country,
		log:      logging.New("payments"),
	}
}

// CreateIntent runs the full server-side half of a checkout: validation,
// customer resolution, intent creation. Errors are one of ValidationError,
// CustomerError, CardError, InvalidRequestError or ProviderError.
func (s *IntentService) CreateIntent(ctx context.Context, req models.PurchaseRequest) (IntentResult, error) {
	if err := validateRequest(req); err != nil {
		return IntentResult{}, err
	}

	customer, err := s.resolveCustomer(ctx, req.Customer)
	if err != nil {
		s.log.Error("customer upsert failed", "email", req.Customer.Email, "err", err)
		return IntentResult{}, CustomerError{
			Message: "Invalid customer information",
			Detail:  providerDetail(err),
		}
	}

	params := &stripe.PaymentIntentParams{
		Amount:       stripe.Int64(int64(math.Round(req.Amount))),
		Currency:     stripe.String(s.currency), // requested currency is ignored on purpose
		Customer:     stripe.String(customer.ID),
		Description:  stripe.String(req.Description),
		ReceiptEmail: stripe.String(req.Customer.Email),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	params.AddMetadata("domesticTransaction", "true")
	params.AddMetadata("customerCountry", s.country)
	params.AddMetadata("customerPhone", req.Customer.Phone)
	params.AddMetadata("customerState", req.Customer.Address.State)
	params.AddMetadata("customerCity", req.Customer.Address.City)
	params.AddMetadata("customerPinCode", req.Customer.Address.PostalCode)

	intent, err := s.gateway.CreateIntent(ctx, params)
	if err != nil {
		s.log.Error("payment intent creation failed", "customer", customer.ID, "err", err)
		return IntentResult{}, mapProviderError(err)
	}

	s.log.Info("payment intent created",
		"intent", intent.ID, "customer", customer.ID, "amount", intent.Amount)

	return IntentResult{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
		CustomerID:      customer.ID,
		Amount:          intent.Amount,
		Currency:        string(intent.Currency),
	}, nil
}

// resolveCustomer is a last-write-wins upsert keyed by email: the first
// matching customer is updated with the latest contact details, otherwise a
// new one is created. Concurrent checkouts for the same email can still race
// the lookup; the loser's write simply wins.
func (s *IntentService) resolveCustomer(ctx context.Context, c models.PurchaseCustomer) (*stripe.Customer, error) {
	existing, err := s.gateway.FindCustomerByEmail(ctx, c.Email)
	if err != nil {
		return nil, err
	}

	params := &stripe.CustomerParams{
		Name:  stripe.String(c.Name),
		Phone: stripe.String(c.Phone),
		Address: &stripe.AddressParams{
			Line1:      stripe.String(c.Address.Line1),
			City:       stripe.String(c.Address.City),
			State:      stripe.String(c.Address.State),
			PostalCode: stripe.String(c.Address.PostalCode),
			Country:    stripe.String(s.country),
		},
	}

	if existing != nil {
		return s.gateway.UpdateCustomer(ctx, existing.ID, params)
	}

	params.Email = stripe.String(c.Email)
	return s.gateway.CreateCustomer(ctx, params)
}

// validateRequest enforces the checks in order, failing fast with the exact
// client-facing message for each.
func validateRequest(req models.PurchaseRequest) error {
	if req.Amount <= 0 {
		return ValidationError{Message: "Valid amount is required"}
	}
	c := req.Customer
	if c.Name == "" || c.Email == "" || c.Phone == "" {
		return ValidationError{Message: "Customer name, email, and phone are required for Indian payments"}
	}
	a := c.Address
	if a.Line1 == "" || a.City == "" || a.State == "" || a.PostalCode == "" {
		return ValidationError{Message: "Complete address is required for Indian payments"}
	}
	if req.Description == "" {
		return ValidationError{Message: "Description is required"}
	}
	if !pinCodeRegex.MatchString(a.PostalCode) {
		return ValidationError{Message: "Invalid PIN code format. Must be 6 digits."}
	}
	if !phoneRegex.MatchString(c.Phone) {
		return ValidationError{Message: "Invalid phone number format"}
	}
	return nil
}

// mapProviderError translates the provider's error categories into the
// client-facing taxonomy. Card declines and malformed requests are the
// buyer's problem (400); anything else is ours (500).
func mapProviderError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		switch stripeErr.Type {
		case stripe.ErrorTypeCard:
			return CardError{Message: "Your card was declined.", Detail: stripeErr.Msg}
		case stripe.ErrorTypeInvalidRequest:
			return InvalidRequestError{Message: "Invalid payment information.", Detail: stripeErr.Msg}
		}
	}
	return ProviderError{Message: "Failed to create payment intent", Detail: providerDetail(err)}
}

func providerDetail(err error) string {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return stripeErr.Msg
	}
	return err.Error()
}
