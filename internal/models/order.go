package models

import "time"

// Order is a placed order as stored by the API server.
type Order struct {
	ID            int         `json:"id"`
	Reference     string      `json:"reference"`
	Total         float64     `json:"total"`
	PaymentMethod string      `json:"payment_method"`
	Status        string      `json:"status"`
	Items         []OrderItem `json:"items,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}

// OrderItem is one product line of a placed order. Price is the catalog
// price at checkout time, not the client's cart snapshot.
type OrderItem struct {
	ID        int     `json:"id"`
	OrderID   int     `json:"order_id"`
	ProductID int     `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}
