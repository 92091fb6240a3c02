package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/models"
	"storefront/internal/payments"
)

// CreatePaymentIntent is the one server route the storefront needs: it keeps
// the provider's secret key out of the browser. Validation happens inside
// the service; this handler only shapes JSON in and out.
func CreatePaymentIntent(svc *payments.IntentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/payments/create-payment-intent"
		defer handlePanic(c, route)

		var req models.PurchaseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		result, err := svc.CreateIntent(c.Request.Context(), req)
		if err != nil {
			writePaymentError(c, err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// writePaymentError maps the payment taxonomy onto the wire contract:
// validation/customer/card/invalid-request are 400s, everything else a 500.
func writePaymentError(c *gin.Context, err error) {
	var (
		validationErr payments.ValidationError
		customerErr   payments.CustomerError
		cardErr       payments.CardError
		invalidErr    payments.InvalidRequestError
		providerErr   payments.ProviderError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"message": validationErr.Message})
	case errors.As(err, &customerErr):
		c.JSON(http.StatusBadRequest, gin.H{"message": customerErr.Message, "error": customerErr.Detail})
	case errors.As(err, &cardErr):
		c.JSON(http.StatusBadRequest, gin.H{"message": cardErr.Message, "error": cardErr.Detail})
	case errors.As(err, &invalidErr):
		c.JSON(http.StatusBadRequest, gin.H{"message": invalidErr.Message, "error": invalidErr.Detail})
	case errors.As(err, &providerErr):
		c.JSON(http.StatusInternalServerError, gin.H{"message": providerErr.Message, "error": providerErr.Detail})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}
