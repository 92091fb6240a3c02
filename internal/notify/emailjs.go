package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"storefront/internal/logging"
)

// NotificationError means the operator email could not be sent. Callers log
// it and move on; it never reaches the buyer and is never retried.
type NotificationError struct {
	Message string
	Err     error
}

func (e NotificationError) Error() string { return e.Message }

func (e NotificationError) Unwrap() error { return e.Err }

// OrderSummary carries everything the operator email template needs.
type OrderSummary struct {
	OrderID         string
	CustomerName    string
	CustomerEmail   string
	ProductName     string
	ProductPrice    float64
	OrderTotal      float64
	PaymentIntentID string
	OrderDate       time.Time
	Address         string
	City            string
	State           string
	ZipCode         string
	Phone           string
}

// Dispatcher sends order confirmations to a single fixed operator address
// through EmailJS's template-send endpoint.
type Dispatcher struct {
	client        *http.Client
	baseURL       string
	serviceID     string
	templateID    string
	userID        string
	operatorEmail string
	log           *slog.Logger
}

func NewDispatcher(baseURL, serviceID, templateID, userID, operatorEmail string) *Dispatcher {
	return &Dispatcher{
		client:        &http.Client{},
		baseURL:       baseURL,
		serviceID:     serviceID,
		templateID:    templateID,
		userID:        userID,
		operatorEmail: operatorEmail,
		log:           logging.New("notify"),
	}
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// Notify posts the order summary to the email service. It fails fast, with
// no network call, when the summary is missing its required identity fields.
func (d *Dispatcher) Notify(ctx context.Context, s OrderSummary) error {
	if s.OrderID == "" || s.CustomerName == "" || s.CustomerEmail == "" {
		return NotificationError{Message: "missing required order data for email notification"}
	}

	body, err := json.Marshal(sendRequest{
		ServiceID:      d.serviceID,
		TemplateID:     d.templateID,
		UserID:         d.userID,
		TemplateParams: d.templateParams(s),
	})
	if err != nil {
		return NotificationError{Message: "could not encode notification", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/api/v1.0/email/send", bytes.NewReader(body))
	if err != nil {
		return NotificationError{Message: "could not build notification request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return NotificationError{Message: "notification send failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return NotificationError{
			Message: fmt.Sprintf("notification rejected with status %d: %s", resp.StatusCode, detail),
		}
	}

	d.log.Info("order notification sent", "order", s.OrderID, "to", d.operatorEmail)
	return nil
}

func (d *Dispatcher) templateParams(s OrderSummary) map[string]string {
	orderDate := s.OrderDate.Format("02/01/2006, 3:04:05 pm")

	return map[string]string{
		"to_email":  d.operatorEmail,
		"from_name": "E-Commerce Store",
		"subject":   fmt.Sprintf("New Order Received - #%s", s.OrderID),

		"order_id":       s.OrderID,
		"customer_name":  s.CustomerName,
		"customer_email": s.CustomerEmail,
		"product_name":   s.ProductName,
		"product_price":  fmt.Sprintf("₹%.2f", s.ProductPrice),
		"order_total":    fmt.Sprintf("₹%.2f", s.OrderTotal),
		"order_date":     orderDate,

		"customer_address": orDefault(s.Address, "Not provided"),
		"customer_city":    orDefault(s.City, "Not provided"),
		"customer_state":   orDefault(s.State, "Not provided"),
		"customer_zipcode": orDefault(s.ZipCode, "Not provided"),
		"customer_phone":   orDefault(s.Phone, "Not provided"),

		"payment_intent_id": orDefault(s.PaymentIntentID, "Not available"),

		"message": d.messageBody(s, orderDate),
	}
}

func (d *Dispatcher) messageBody(s OrderSummary, orderDate string) string {
	return fmt.Sprintf(`NEW ORDER RECEIVED!

Order Information:
• Order ID: #%s
• Date: %s
• Status: Confirmed

Customer Details:
• Name: %s
• Email: %s
• Phone: %s

Product Details:
• Product: %s
• Price: ₹%.2f
• Total: ₹%.2f

Delivery Address:
%s
%s, %s - %s

Payment Details:
• Payment ID: %s
• Status: Success

Please process this order in the admin dashboard.`,
		s.OrderID, orderDate,
		s.CustomerName, s.CustomerEmail, orDefault(s.Phone, "Not provided"),
		s.ProductName, s.ProductPrice, s.OrderTotal,
		orDefault(s.Address, "Not provided"), s.City, s.State, s.ZipCode,
		orDefault(s.PaymentIntentID, "Not available"))
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
