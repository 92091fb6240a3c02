package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func summary() OrderSummary {
	return OrderSummary{
		OrderID:         "ORD-1756700000000-a1b2c",
		CustomerName:    "Asha Rao",
		CustomerEmail:   "asha@example.com",
		ProductName:     "Smart Watch",
		ProductPrice:    199.99,
		OrderTotal:      199.99,
		PaymentIntentID: "pi_test",
		OrderDate:       time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC),
		Address:         "12 MG Road",
		City:            "Mumbai",
		State:           "Maharashtra",
		ZipCode:         "400001",
		Phone:           "+91 9876543210",
	}
}

func TestNotifySendsTemplateParams(t *testing.T) {
	var got sendRequest
	var calls int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path != "/api/v1.0/email/send" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	d := NewDispatcher(srv.URL, "service_test", "template_test", "user_test", "ops@example.com")

	if err := d.Notify(context.Background(), summary()); err != nil {
		t.Fatalf("Notify returned error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one send, got %d", calls)
	}
	if got.ServiceID != "service_test" || got.TemplateID != "template_test" || got.UserID != "user_test" {
		t.Fatalf("unexpected service identifiers: %+v", got)
	}

	params := got.TemplateParams
	if params["to_email"] != "ops@example.com" {
		t.Fatalf("expected fixed operator address, got %q", params["to_email"])
	}
	if params["subject"] != "New Order Received - #ORD-1756700000000-a1b2c" {
		t.Fatalf("unexpected subject %q", params["subject"])
	}
	if params["customer_name"] != "Asha Rao" || params["order_total"] != "₹199.99" {
		t.Fatalf("unexpected params: name=%q total=%q", params["customer_name"], params["order_total"])
	}
	if !strings.Contains(params["message"], "NEW ORDER RECEIVED!") {
		t.Fatal("expected preformatted message body")
	}
	if !strings.Contains(params["message"], "Mumbai, Maharashtra - 400001") {
		t.Fatalf("expected address line in message, got:\n%s", params["message"])
	}
}

func TestNotifyFailsFastOnMissingFields(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	d := NewDispatcher(srv.URL, "s", "t", "u", "ops@example.com")

	for _, mutate := range []func(*OrderSummary){
		func(s *OrderSummary) { s.OrderID = "" },
		func(s *OrderSummary) { s.CustomerName = "" },
		func(s *OrderSummary) { s.CustomerEmail = "" },
	} {
		s := summary()
		mutate(&s)

		err := d.Notify(context.Background(), s)
		var nErr NotificationError
		if !errors.As(err, &nErr) {
			t.Fatalf("expected NotificationError, got %v", err)
		}
	}
	if calls != 0 {
		t.Fatalf("expected no HTTP calls for invalid summaries, got %d", calls)
	}
}

func TestNotifyReportsRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad template", http.StatusBadRequest)
	}))
	defer srv.Close()

	d := NewDispatcher(srv.URL, "s", "t", "u", "ops@example.com")

	err := d.Notify(context.Background(), summary())
	var nErr NotificationError
	if !errors.As(err, &nErr) {
		t.Fatalf("expected NotificationError, got %v", err)
	}
	if !strings.Contains(nErr.Message, "status 400") {
		t.Fatalf("expected status in message, got %q", nErr.Message)
	}
}
