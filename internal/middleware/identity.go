package middleware

import (
	"github.com/gin-gonic/gin"

	"storefront/internal/logging"
	"storefront/internal/models"
)

const identityKey = "identity"

// OptionalIdentity reads the buyer's identity from a bearer token when one
// is present. Checkout works for anonymous buyers, so a missing or invalid
// token never aborts the request; the order is simply stamped anonymous.
func OptionalIdentity(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		claims, err := parseBearerToken(header, secret)
		if err != nil {
			logging.From(c).Warn("ignoring invalid identity token", "err", err)
			c.Next()
			return
		}

		identity := models.Identity{}
		identity.UID, _ = claims["uid"].(string)
		identity.Name, _ = claims["name"].(string)
		identity.Email, _ = claims["email"].(string)

		if identity.UID != "" {
			c.Set(identityKey, identity)
		}
		c.Next()
	}
}

// IdentityFrom returns the buyer identity attached by OptionalIdentity, if
// any.
func IdentityFrom(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return models.Identity{}, false
	}
	identity, ok := v.(models.Identity)
	return identity, ok
}
