package handlers

import (
	"encoding/json"

	"github.com/rogerio-castellano/greenmarket/internal/models"
)

type ProductRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Stock       int     `json:"stock"`
}

type StockResponse struct {
	Available bool `json:"available"`
	Stock     int  `json:"stock"`
}

type StockAdjustmentRequest struct {
	Delta int `json:"delta"` // can be positive or negative
}

type VerifyCartRequest struct {
	Items []models.CartLineItem `json:"items"`
}

type VerifyCartResponse struct {
	Valid   bool                  `json:"valid"`
	Cart    []models.CartLineItem `json:"cart"`
	Message string                `json:"message"`
}

type CheckoutItem struct {
	ID       int `json:"id"`
	Quantity int `json:"quantity"`
}

type CheckoutRequest struct {
	Items         []CheckoutItem `json:"items"`
	PaymentMethod string         `json:"paymentMethod"`
	// PaymentInfo is method-specific; the server records the method and does
	// not inspect the details.
	PaymentInfo json.RawMessage `json:"paymentInfo"`
}

type CheckoutResponse struct {
	Success   bool    `json:"success"`
	OrderID   int     `json:"orderId"`
	Reference string  `json:"reference"`
	Timestamp string  `json:"timestamp"`
	Total     float64 `json:"total"`
}

// ErrorResponse carries a user-facing message; clients surface it verbatim.
type ErrorResponse struct {
	Message string `json:"message"`
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string `json:"token"`
}
