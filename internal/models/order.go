package models

import "time"

// OrderStatusPending is the status every order is created with.
const OrderStatusPending = "pending"

// Customer holds the contact details captured at checkout.
type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// Delivery holds where and when the order should be delivered.
type Delivery struct {
	Address string `json:"address"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Notes   string `json:"notes"`
}

// Payment holds the payment method chosen at checkout.
type Payment struct {
	Method string `json:"method"`
}

// Order represents a submitted checkout. Orders are append-only.
type Order struct {
	Customer    Customer  `json:"customer"`
	Delivery    Delivery  `json:"delivery"`
	Payment     Payment   `json:"payment"`
	Items       Cart      `json:"items" validate:"dive"`
	Timestamp   time.Time `json:"timestamp"`
	OrderNumber string    `json:"orderNumber" validate:"required"`
	Status      string    `json:"status" validate:"required"` // always "pending" on creation
}

// Total returns the order value computed from its item snapshot.
func (o Order) Total() int {
	return o.Items.TotalPrice()
}
