package validator

import "errors"

var (
	ErrNoItems        = errors.New("order must contain at least one item")
	ErrBadQuantity    = errors.New("quantity must be a positive integer")
	ErrBadPrice       = errors.New("price must be non-negative")
	ErrMissingProduct = errors.New("productId is required")
)

// OrderItemShape is the wire shape of one line item.
type OrderItemShape struct {
	ProductID int64
	Quantity  int
	Price     float64
}

// ValidateOrderItems rejects malformed item lists before the usecase runs.
// The usecase revalidates the order-critical rules on its own.
func ValidateOrderItems(items []OrderItemShape) error {
	if len(items) == 0 {
		return ErrNoItems
	}
	for _, it := range items {
		if it.ProductID <= 0 {
			return ErrMissingProduct
		}
		if it.Quantity <= 0 {
			return ErrBadQuantity
		}
		if it.Price < 0 {
			return ErrBadPrice
		}
	}
	return nil
}
