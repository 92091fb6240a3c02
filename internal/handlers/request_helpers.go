package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/logging"
)

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		logging.From(c).Error("panic recovered", "route", route, "panic", r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	logging.From(c).Warn("request rejected", "route", route, "status", status, "message", message)
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}
