package order

import (
	"errors"
	"fmt"
)

var (
	ErrCartEmpty       = errors.New("cart is empty")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrUnauthorized    = errors.New("unauthorized")
)

// NotFoundError reports a cart line referencing a product that does not exist.
type NotFoundError struct {
	ProductID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product with ID %d not found", e.ProductID)
}

// InsufficientStockError reports a cart line exceeding the product's stock.
type InsufficientStockError struct {
	ProductID   int
	ProductName string
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for %s, available: %d", e.ProductName, e.Available)
}
