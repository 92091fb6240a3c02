package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/stripe/stripe-go/v74"

	"storefront/internal/logging"
	"storefront/internal/models"
	"storefront/internal/orders"
	"storefront/internal/payments"
)

// ConfirmationError carries the provider's message verbatim when a payment
// could not be confirmed. Nothing has been recorded when one is returned.
type ConfirmationError struct {
	Message string
}

func (e ConfirmationError) Error() string { return e.Message }

// Flow sequences the tail of a checkout: confirm the already-created intent,
// gate on the succeeded terminal state, record the order, fire the
// best-effort notification. Each stage strictly waits for the previous one;
// nothing here runs two mutating calls concurrently for one attempt.
type Flow struct {
	gateway  payments.Gateway
	recorder *orders.Recorder
	log      *slog.Logger
}

func NewFlow(gateway payments.Gateway, recorder *orders.Recorder) *Flow {
	return &Flow{
		gateway:  gateway,
		recorder: recorder,
		log:      logging.New("checkout"),
	}
}

// Complete confirms the intent and records the order. Returns
// ConfirmationError when the provider declines or leaves the intent in a
// non-succeeded state, and orders.PersistenceError when the payment went
// through but the order write failed.
func (f *Flow) Complete(ctx context.Context, intentID, paymentMethodID string, req models.PurchaseRequest, product models.Product, userID string) (models.Order, error) {
	params := &stripe.PaymentIntentConfirmParams{}
	if paymentMethodID != "" {
		params.PaymentMethod = stripe.String(paymentMethodID)
	}

	intent, err := f.gateway.ConfirmIntent(ctx, intentID, params)
	if err != nil {
		f.log.Error("payment confirmation failed", "intent", intentID, "err", err)
		return models.Order{}, ConfirmationError{Message: confirmationMessage(err)}
	}

	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		f.log.Info("payment not completed", "intent", intentID, "status", intent.Status)
		return models.Order{}, ConfirmationError{
			Message: fmt.Sprintf("Payment was not completed. Status: %s", intent.Status),
		}
	}

	return f.recorder.Record(ctx, intent, req, product, userID)
}

// Wait blocks until in-flight notifications drain. Call on shutdown.
func (f *Flow) Wait() {
	f.recorder.Wait()
}

func confirmationMessage(err error) string {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		return stripeErr.Msg
	}
	return err.Error()
}
