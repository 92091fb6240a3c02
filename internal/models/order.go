package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is a closed enum. Any status may follow any other; the
// progression is administrator-driven, not enforced by the system.
type OrderStatus string

const (
	StatusConfirmed  OrderStatus = "confirmed"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Address is the buyer's delivery address snapshot, stored with the field
// names the payment provider uses so support can cross-reference both sides.
type Address struct {
	Line1      string `bson:"line1" json:"line1"`
	City       string `bson:"city" json:"city"`
	State      string `bson:"state" json:"state"`
	PostalCode string `bson:"postal_code" json:"postal_code"`
	Country    string `bson:"country" json:"country"`
}

// Order defines the persisted order document. Everything except orderStatus
// and updatedAt is immutable after the write.
type Order struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID string             `bson:"orderId" json:"orderId"`

	UserID    string `bson:"userId" json:"userId"`
	UserName  string `bson:"userName" json:"userName"`
	UserEmail string `bson:"userEmail" json:"userEmail"`
	Phone     string `bson:"phone" json:"phone"`

	ProductID    int     `bson:"productId" json:"productId"`
	ProductName  string  `bson:"productName" json:"productName"`
	ProductImage string  `bson:"productImage" json:"productImage"`
	Total        float64 `bson:"total" json:"total"`

	Address  Address `bson:"address" json:"address"`
	Currency string  `bson:"currency" json:"currency"`

	PaymentIntentID     string `bson:"paymentIntentId" json:"paymentIntentId"`
	PaymentStatus       string `bson:"paymentStatus" json:"paymentStatus"`
	DomesticTransaction bool   `bson:"domesticTransaction" json:"domesticTransaction"`

	OrderStatus OrderStatus `bson:"orderStatus" json:"orderStatus"`
	CreatedAt   time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt   *time.Time  `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
