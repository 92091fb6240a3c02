package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/models"
)

// GetProducts returns the fixed catalog the storefront sells.
func GetProducts() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.Catalog)
	}
}
