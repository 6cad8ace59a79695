package model

import "time"

type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "pending"
	OrderStatusPaid     OrderStatus = "paid"
	OrderStatusRefunded OrderStatus = "refunded"
)

type Customer struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type ShippingAddress struct {
	Name       string `json:"name,omitempty"`
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalcode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// OrderItem amounts are integer minor currency units.
type OrderItem struct {
	ProductSlug string      `json:"productslug"`
	ProductName string      `json:"productname"`
	ProductType ProductType `json:"producttype,omitempty"`
	SKU         string      `json:"sku,omitempty"`
	Quantity    int64       `json:"quantity"`
	UnitPrice   int64       `json:"unitprice"`
	TotalPrice  int64       `json:"totalprice"`
}

// Order is created exactly once per completed checkout session; the Stripe
// session id is the external correlation key and must be unique.
type Order struct {
	OrderID         string            `json:"orderid"`
	StripeSessionID string            `json:"stripesessionid"`
	PaymentIntentID string            `json:"paymentintentid,omitempty"`
	Status          OrderStatus       `json:"status"`
	Customer        Customer          `json:"customer"`
	Items           []OrderItem       `json:"items"`
	Shipping        *ShippingAddress  `json:"shipping,omitempty"`
	Subtotal        int64             `json:"subtotal"`
	Total           int64             `json:"total"`
	Currency        string            `json:"currency,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}
