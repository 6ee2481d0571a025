package repo

import (
	"errors"
	"fmt"
)

// ErrProductNotFound is returned when a product is not found in the repository.
var ErrProductNotFound = errors.New("product not found")

// ErrDuplicatedValueUnique is returned when an insert violates a unique constraint.
var ErrDuplicatedValueUnique = errors.New("unique constraint violation")

// ErrUserNotFound is returned when no user matches the given username.
var ErrUserNotFound = errors.New("user not found")

// ErrOrderNotFound is returned when an order is not found in the repository.
var ErrOrderNotFound = errors.New("order not found")

// ErrInvalidStockChange is returned when a stock adjustment would make the
// stock negative.
var ErrInvalidStockChange = errors.New("stock cannot be negative")

// InsufficientStockError is returned by order placement when a requested
// quantity exceeds the available stock for a product.
type InsufficientStockError struct {
	ProductID   int
	ProductName string
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for %s", e.ProductName)
}
