package models

// PurchaseCustomer is the buyer contact block of a purchase request.
type PurchaseCustomer struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Address Address `json:"address"`
}

// PurchaseRequest is the ephemeral per-checkout payload handed to the
// payment-intent service. Amount is in minor currency units (paise); the
// service rounds it to the nearest integer before charging.
type PurchaseRequest struct {
	Amount      float64           `json:"amount"`
	Currency    string            `json:"currency,omitempty"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Customer    PurchaseCustomer  `json:"customer"`
}
