package models

import "time"

// OrderItem is one line of a placed order. Unlike a cart line it carries
// the name and price the backend captured at placement time.
type OrderItem struct {
	ItemID   int64   `json:"itemId"`
	ItemName string  `json:"itemName"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Order is a server-issued purchase record. The backend assigns the id
// and totals; only Status ever changes after creation.
type Order struct {
	ID            int64       `json:"id"`
	Username      string      `json:"username"`
	Address       string      `json:"address"`
	PaymentMethod string      `json:"paymentMethod"`
	Items         []OrderItem `json:"items"`
	TotalAmount   float64     `json:"totalAmount"`
	Status        OrderStatus `json:"status"`
	OrderDate     time.Time   `json:"orderDate"`
}

// NextStatus returns the advance affordance for this order: the single
// status the UI may offer next, or "" when the order is terminal.
func (o *Order) NextStatus() OrderStatus {
	if o.Status.IsTerminal() {
		return ""
	}
	next, ok := o.Status.Next()
	if !ok {
		return ""
	}
	return next
}

// PlaceOrderRequest is the payload for POST /orders on the backend.
type PlaceOrderRequest struct {
	Username      string     `json:"username"`
	Address       string     `json:"address"`
	PaymentMethod string     `json:"paymentMethod"`
	CartItems     []CartLine `json:"cartItems"`
}
