package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
	"storefront/internal/orders"
)

/* =========================
   LIST ORDERS
========================= */

func GetOrders(store *orders.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		list, err := store.List(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Orders could not be fetched"})
			return
		}

		c.JSON(http.StatusOK, list)
	}
}

/* =========================
   UPDATE ORDER STATUS
========================= */

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func UpdateOrderStatus(store *orders.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /admin/api/orders/:id/status"
		defer handlePanic(c, route)

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req updateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		status := models.OrderStatus(req.Status)
		if !status.Valid() {
			respondWithError(c, http.StatusBadRequest, route, "invalid status")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := store.UpdateStatus(ctx, orderID, status); err != nil {
			if errors.Is(err, orders.ErrNotFound) {
				respondWithError(c, http.StatusNotFound, route, "order not found")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "order status updated"})
	}
}

/* =========================
   DASHBOARD STATS
========================= */

type orderStats struct {
	TotalOrders     int     `json:"totalOrders"`
	TotalRevenue    float64 `json:"totalRevenue"`
	UniqueCustomers int     `json:"uniqueCustomers"`
	AvgOrderValue   float64 `json:"avgOrderValue"`

	ConfirmedOrders  int `json:"confirmedOrders"`
	ProcessingOrders int `json:"processingOrders"`
	ShippedOrders    int `json:"shippedOrders"`
	DeliveredOrders  int `json:"deliveredOrders"`
	CancelledOrders  int `json:"cancelledOrders"`
}

func GetOrderStats(store *orders.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		list, err := store.List(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Orders could not be fetched"})
			return
		}

		c.JSON(http.StatusOK, computeOrderStats(list))
	}
}

func computeOrderStats(list []models.Order) orderStats {
	stats := orderStats{TotalOrders: len(list)}

	customers := make(map[string]struct{})
	for _, order := range list {
		stats.TotalRevenue += order.Total

		// Anonymous buyers are told apart by email, not by the shared
		// "anonymous" user id.
		key := order.UserID
		if key == "" || key == "anonymous" {
			key = order.UserEmail
		}
		customers[key] = struct{}{}

		switch order.OrderStatus {
		case models.StatusConfirmed:
			stats.ConfirmedOrders++
		case models.StatusProcessing:
			stats.ProcessingOrders++
		case models.StatusShipped:
			stats.ShippedOrders++
		case models.StatusDelivered:
			stats.DeliveredOrders++
		case models.StatusCancelled:
			stats.CancelledOrders++
		}
	}

	stats.UniqueCustomers = len(customers)
	if stats.TotalOrders > 0 {
		stats.AvgOrderValue = stats.TotalRevenue / float64(stats.TotalOrders)
	}
	return stats
}
