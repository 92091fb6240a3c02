package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"storefront/internal/models"
)

func TestComputeOrderStats(t *testing.T) {
	list := []models.Order{
		{UserID: "user-1", UserEmail: "a@example.com", Total: 100, OrderStatus: models.StatusConfirmed},
		{UserID: "user-1", UserEmail: "a@example.com", Total: 200, OrderStatus: models.StatusShipped},
		{UserID: "anonymous", UserEmail: "b@example.com", Total: 50, OrderStatus: models.StatusDelivered},
		{UserID: "anonymous", UserEmail: "c@example.com", Total: 50, OrderStatus: models.StatusCancelled},
	}

	stats := computeOrderStats(list)

	if stats.TotalOrders != 4 {
		t.Fatalf("expected 4 orders, got %d", stats.TotalOrders)
	}
	if stats.TotalRevenue != 400 {
		t.Fatalf("expected revenue 400, got %v", stats.TotalRevenue)
	}
	if stats.UniqueCustomers != 3 {
		t.Fatalf("expected 3 unique customers, got %d", stats.UniqueCustomers)
	}
	if stats.AvgOrderValue != 100 {
		t.Fatalf("expected avg 100, got %v", stats.AvgOrderValue)
	}
	if stats.ConfirmedOrders != 1 || stats.ShippedOrders != 1 || stats.DeliveredOrders != 1 || stats.CancelledOrders != 1 {
		t.Fatalf("unexpected status counts: %+v", stats)
	}
}

func TestComputeOrderStatsEmpty(t *testing.T) {
	stats := computeOrderStats(nil)
	if stats.TotalOrders != 0 || stats.AvgOrderValue != 0 || stats.UniqueCustomers != 0 {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
}

func TestUpdateOrderStatusRejectsBadInput(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// store is never reached for malformed input
	r.PATCH("/admin/api/orders/:id/status", UpdateOrderStatus(nil))

	tests := []struct {
		name string
		id   string
		body string
	}{
		{"invalid id", "not-a-hex-id", `{"status":"shipped"}`},
		{"unknown status", "64b6e6f1a2b3c4d5e6f70809", `{"status":"teleported"}`},
		{"missing status", "64b6e6f1a2b3c4d5e6f70809", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPatch, "/admin/api/orders/"+tt.id+"/status", bytes.NewReader([]byte(tt.body)))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestOrderStatusEnumIsClosed(t *testing.T) {
	for _, status := range []models.OrderStatus{
		models.StatusConfirmed, models.StatusProcessing, models.StatusShipped,
		models.StatusDelivered, models.StatusCancelled,
	} {
		if !status.Valid() {
			t.Fatalf("expected %s to be valid", status)
		}
	}
	for _, status := range []models.OrderStatus{"", "pending", "CONFIRMED", "returned"} {
		if status.Valid() {
			t.Fatalf("expected %q to be invalid", status)
		}
	}
}
