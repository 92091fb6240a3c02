package checkout

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"storefront/internal/models"
)

// Form holds the buyer-entered checkout fields before any network call.
type Form struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

// FieldError blocks submission and points at the offending field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string { return e.Message }

// BuildPurchaseRequest validates the form field-by-field and assembles the
// request the payment-intent service expects. Only presence is checked here;
// the regex shapes (PIN code, phone) are enforced server-side, which is the
// authoritative check.
func BuildPurchaseRequest(product models.Product, form Form, currency, country string) (models.PurchaseRequest, error) {
	if strings.TrimSpace(form.Name) == "" {
		return models.PurchaseRequest{}, FieldError{Field: "name", Message: "Name is required"}
	}
	if strings.TrimSpace(form.Email) == "" {
		return models.PurchaseRequest{}, FieldError{Field: "email", Message: "Email is required"}
	}
	if strings.TrimSpace(form.Phone) == "" {
		return models.PurchaseRequest{}, FieldError{Field: "phone", Message: "Phone number is required for Indian payments"}
	}
	if strings.TrimSpace(form.Address) == "" {
		return models.PurchaseRequest{}, FieldError{Field: "address", Message: "Address is required"}
	}
	if strings.TrimSpace(form.City) == "" {
		return models.PurchaseRequest{}, FieldError{Field: "city", Message: "City is required"}
	}
	if strings.TrimSpace(form.State) == "" {
		return models.PurchaseRequest{}, FieldError{Field: "state", Message: "State is required"}
	}
	if strings.TrimSpace(form.ZipCode) == "" {
		return models.PurchaseRequest{}, FieldError{Field: "zipCode", Message: "PIN code is required"}
	}

	return models.PurchaseRequest{
		Amount:      float64(AmountMinorUnits(product.Price)),
		Currency:    currency,
		Description: fmt.Sprintf("%s - Domestic Purchase", product.Name),
		Metadata: map[string]string{
			"productName":         product.Name,
			"domesticTransaction": "true",
			"customerCountry":     country,
		},
		Customer: models.PurchaseCustomer{
			Name:  form.Name,
			Email: form.Email,
			Phone: form.Phone,
			Address: models.Address{
				Line1:      form.Address,
				City:       form.City,
				State:      form.State,
				PostalCode: form.ZipCode,
				Country:    country,
			},
		},
	}, nil
}

// AmountMinorUnits converts a display price to integer minor units with
// exact decimal arithmetic. 99.99 must become 9999, never 9998.
func AmountMinorUnits(price float64) int64 {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
