package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/checkout"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/orders"
)

type completeCheckoutRequest struct {
	PaymentIntentID string        `json:"paymentIntentId" binding:"required"`
	PaymentMethodID string        `json:"paymentMethodId"`
	ProductID       int           `json:"productId" binding:"required"`
	Customer        checkout.Form `json:"customer" binding:"required"`
}

// CompleteCheckout runs the tail of a purchase: confirm the intent, record
// the order, fire the operator email. The payment-intent must already exist
// (created via the payments route).
func CompleteCheckout(flow *checkout.Flow, currency, country string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/checkout/complete"
		defer handlePanic(c, route)

		var body completeCheckoutRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		product, ok := models.FindProduct(body.ProductID)
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "unknown product")
			return
		}

		req, err := checkout.BuildPurchaseRequest(product, body.Customer, currency, country)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		userID := ""
		if identity, ok := middleware.IdentityFrom(c); ok {
			userID = identity.UID
			req.Metadata["userId"] = identity.UID
		}

		order, err := flow.Complete(c.Request.Context(), body.PaymentIntentID, body.PaymentMethodID, req, product, userID)
		if err != nil {
			writeCheckoutError(c, err)
			return
		}

		c.JSON(http.StatusCreated, order)
	}
}

func writeCheckoutError(c *gin.Context, err error) {
	var (
		confirmErr checkout.ConfirmationError
		persistErr orders.PersistenceError
	)

	switch {
	case errors.As(err, &confirmErr):
		c.JSON(http.StatusBadRequest, gin.H{"message": confirmErr.Message})
	case errors.As(err, &persistErr):
		// The charge went through but the order is unrecorded; give the
		// client the intent id so support can reconcile.
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":         persistErr.Error(),
			"paymentIntentId": persistErr.PaymentIntentID,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}
