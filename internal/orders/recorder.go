package orders

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v74"

	"storefront/internal/logging"
	"storefront/internal/models"
	"storefront/internal/notify"
)

// PersistenceError means the payment succeeded but the order document could
// not be written. There is no automatic refund or retry; the intent id is
// carried so an operator can reconcile by hand.
type PersistenceError struct {
	PaymentIntentID string
	Err             error
}

func (e PersistenceError) Error() string {
	return fmt.Sprintf("Failed to save order: %v", e.Err)
}

func (e PersistenceError) Unwrap() error { return e.Err }

// Writer is the slice of the store the recorder needs.
type Writer interface {
	Insert(ctx context.Context, order models.Order) (models.Order, error)
}

// Notifier sends the operator confirmation email.
type Notifier interface {
	Notify(ctx context.Context, s notify.OrderSummary) error
}

// Recorder persists confirmed orders and fires the operator notification as
// a best-effort side task. Notification failures are logged and swallowed;
// they never fail an already-written order.
type Recorder struct {
	store         Writer
	notifier      Notifier
	country       string
	notifyTimeout time.Duration
	log           *slog.Logger
	wg            sync.WaitGroup
}

func NewRecorder(store Writer, notifier Notifier, country string, notifyTimeout time.Duration) *Recorder {
	return &Recorder{
		store:         store,
		notifier:      notifier,
		country:       country,
		notifyTimeout: notifyTimeout,
		log:           logging.New("orders"),
	}
}

// Record writes one order document for a succeeded payment intent. The
// caller has already gated on the intent's terminal state.
func (r *Recorder) Record(ctx context.Context, intent *stripe.PaymentIntent, req models.PurchaseRequest, product models.Product, userID string) (models.Order, error) {
	if userID == "" {
		userID = "anonymous"
	}

	now := time.Now()
	order := models.Order{
		OrderID: mintOrderID(now),

		UserID:    userID,
		UserName:  req.Customer.Name,
		UserEmail: req.Customer.Email,
		Phone:     req.Customer.Phone,

		ProductID:    product.ID,
		ProductName:  product.Name,
		ProductImage: product.Image,
		Total:        product.Price,

		Address: models.Address{
			Line1:      req.Customer.Address.Line1,
			City:       req.Customer.Address.City,
			State:      req.Customer.Address.State,
			PostalCode: req.Customer.Address.PostalCode,
			Country:    r.country,
		},
		Currency: strings.ToUpper(string(intent.Currency)),

		PaymentIntentID:     intent.ID,
		PaymentStatus:       string(intent.Status),
		DomesticTransaction: true,

		OrderStatus: models.StatusConfirmed,
		CreatedAt:   now,
	}

	saved, err := r.store.Insert(ctx, order)
	if err != nil {
		r.log.Error("order write failed after successful payment",
			"paymentIntentId", intent.ID,
			"orderId", order.OrderID,
			"reconciliation_required", true,
			"err", err)
		return models.Order{}, PersistenceError{PaymentIntentID: intent.ID, Err: err}
	}

	r.log.Info("order recorded", "orderId", saved.OrderID, "paymentIntentId", intent.ID)

	r.dispatchNotification(saved)
	return saved, nil
}

// dispatchNotification runs the email send off the request path with its own
// deadline. The request context is not reused: it dies with the response.
func (r *Recorder) dispatchNotification(order models.Order) {
	summary := notify.OrderSummary{
		OrderID:         order.OrderID,
		CustomerName:    order.UserName,
		CustomerEmail:   order.UserEmail,
		ProductName:     order.ProductName,
		ProductPrice:    order.Total,
		OrderTotal:      order.Total,
		PaymentIntentID: order.PaymentIntentID,
		OrderDate:       order.CreatedAt,
		Address:         order.Address.Line1,
		City:            order.Address.City,
		State:           order.Address.State,
		ZipCode:         order.Address.PostalCode,
		Phone:           order.Phone,
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), r.notifyTimeout)
		defer cancel()

		if err := r.notifier.Notify(ctx, summary); err != nil {
			r.log.Error("order notification failed", "orderId", order.OrderID, "err", err)
		}
	}()
}

// Wait blocks until all in-flight notifications have finished. Used on
// shutdown and in tests.
func (r *Recorder) Wait() {
	r.wg.Wait()
}

// mintOrderID keeps the legacy ORD-<epoch-ms>-<suffix> shape the dashboard
// displays, but draws the 5-char base36 suffix from UUID entropy. The unique
// index on orderId catches any residual collision.
func mintOrderID(now time.Time) string {
	u := uuid.New()
	suffix := strconv.FormatUint(binary.BigEndian.Uint64(u[:8]), 36)
	if len(suffix) > 5 {
		suffix = suffix[:5]
	}
	for len(suffix) < 5 {
		suffix = "0" + suffix
	}
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), suffix)
}
