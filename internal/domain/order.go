package domain

import "time"

// Order status values. The forward progression is Confirmed -> Shipped ->
// OutForDelivery -> Delivered; cancellation removes the order record instead
// of setting a status.
const (
	StatusConfirmed      = "Order Confirmed"
	StatusShipped        = "Shipped"
	StatusOutForDelivery = "Out for Delivery"
	StatusDelivered      = "Delivered"
)

// PaymentMethodCashOnDelivery is the only supported payment method.
const PaymentMethodCashOnDelivery = "Cash on Delivery"

type Order struct {
	Key           string      `json:"key"`
	TransactionID string      `json:"transactionId"`
	UserID        string      `json:"userId"`
	UserName      string      `json:"userName"`
	Address       string      `json:"address"`
	Phone         string      `json:"phone"`
	PaymentMethod string      `json:"paymentMethod"`
	Status        string      `json:"status"`
	CreatedAt     time.Time   `json:"createdAt"`
	Lines         []OrderLine `json:"lines"`
}

// OrderLine is frozen at submission time. It reflects the price paid, not the
// current catalog price.
type OrderLine struct {
	ProductID      string `json:"productId"`
	Name           string `json:"name"`
	ImageURL       string `json:"imageUrl"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	TotalCents     int64  `json:"totalCents"`
}
