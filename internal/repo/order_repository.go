package repo

import "github.com/rogerio-castellano/greenmarket/internal/models"

// OrderLine is one requested product line of an order about to be placed.
type OrderLine struct {
	ProductID int
	Quantity  int
}

// OrderRepository defines the interface for order placement and lookup.
// Place verifies stock for every line, creates the order with catalog
// prices, and decrements stock. It either commits the whole order or
// leaves stock untouched.
type OrderRepository interface {
	Place(lines []OrderLine, method models.PaymentMethod) (models.Order, error)
	GetByID(id int) (models.Order, error)
}
