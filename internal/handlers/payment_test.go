package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v74"

	"storefront/internal/payments"
)

type stubGateway struct {
	intentErr error
}

func (g *stubGateway) FindCustomerByEmail(ctx context.Context, email string) (*stripe.Customer, error) {
	return nil, nil
}

func (g *stubGateway) UpdateCustomer(ctx context.Context, id string, params *stripe.CustomerParams) (*stripe.Customer, error) {
	return &stripe.Customer{ID: id}, nil
}

func (g *stubGateway) CreateCustomer(ctx context.Context, params *stripe.CustomerParams) (*stripe.Customer, error) {
	return &stripe.Customer{ID: "cus_stub"}, nil
}

func (g *stubGateway) CreateIntent(ctx context.Context, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	if g.intentErr != nil {
		return nil, g.intentErr
	}
	return &stripe.PaymentIntent{
		ID:           "pi_stub",
		ClientSecret: "pi_stub_secret",
		Amount:       *params.Amount,
		Currency:     stripe.Currency(*params.Currency),
	}, nil
}

func (g *stubGateway) ConfirmIntent(ctx context.Context, id string, params *stripe.PaymentIntentConfirmParams) (*stripe.PaymentIntent, error) {
	return &stripe.PaymentIntent{ID: id, Status: stripe.PaymentIntentStatusSucceeded}, nil
}

func paymentRouter(gw payments.Gateway) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc := payments.NewIntentService(gw, "inr", "IN")
	r.POST("/api/payments/create-payment-intent", CreatePaymentIntent(svc))
	return r
}

func intentBody() map[string]any {
	return map[string]any{
		"amount":      9999,
		"currency":    "usd", // ignored by the service
		"description": "Wireless Bluetooth Headphones - Domestic Purchase",
		"customer": map[string]any{
			"name":  "Asha Rao",
			"email": "asha@example.com",
			"phone": "+91 9876543210",
			"address": map[string]any{
				"line1":       "12 MG Road",
				"city":        "Mumbai",
				"state":       "Maharashtra",
				"postal_code": "400001",
			},
		},
	}
}

func postIntent(t *testing.T, r *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/payments/create-payment-intent", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreatePaymentIntentRejectsMalformedBody(t *testing.T) {
	r := paymentRouter(&stubGateway{})

	req := httptest.NewRequest(http.MethodPost, "/api/payments/create-payment-intent", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCreatePaymentIntentValidationFailure(t *testing.T) {
	r := paymentRouter(&stubGateway{})

	body := intentBody()
	body["amount"] = 0

	w := postIntent(t, r, body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["message"] != "Valid amount is required" {
		t.Fatalf("unexpected message %q", resp["message"])
	}
}

func TestCreatePaymentIntentSuccess(t *testing.T) {
	r := paymentRouter(&stubGateway{})

	w := postIntent(t, r, intentBody())
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		ClientSecret    string `json:"clientSecret"`
		PaymentIntentID string `json:"paymentIntentId"`
		CustomerID      string `json:"customerId"`
		Amount          int64  `json:"amount"`
		Currency        string `json:"currency"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ClientSecret != "pi_stub_secret" || resp.PaymentIntentID != "pi_stub" {
		t.Fatalf("unexpected intent fields: %+v", resp)
	}
	if resp.Currency != "inr" {
		t.Fatalf("expected forced currency inr, got %q", resp.Currency)
	}
	if resp.Amount != 9999 {
		t.Fatalf("expected amount 9999, got %d", resp.Amount)
	}
}

func TestCreatePaymentIntentCardDecline(t *testing.T) {
	r := paymentRouter(&stubGateway{
		intentErr: &stripe.Error{Type: stripe.ErrorTypeCard, Msg: "Your card has insufficient funds."},
	})

	w := postIntent(t, r, intentBody())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["message"] != "Your card was declined." {
		t.Fatalf("unexpected message %q", resp["message"])
	}
	if resp["error"] != "Your card has insufficient funds." {
		t.Fatalf("expected provider detail, got %q", resp["error"])
	}
}

func TestCreatePaymentIntentProviderFailure(t *testing.T) {
	r := paymentRouter(&stubGateway{
		intentErr: &stripe.Error{Type: stripe.ErrorTypeAPI, Msg: "Something went wrong."},
	})

	w := postIntent(t, r, intentBody())
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["message"] != "Failed to create payment intent" {
		t.Fatalf("unexpected message %q", resp["message"])
	}
}
