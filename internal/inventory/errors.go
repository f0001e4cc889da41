package inventory

import "fmt"

// NotFoundError reports a reference to a product or order id that does not
// exist in the store.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s id=%s does not exist", e.Entity, e.ID)
}

// InsufficientStockError rejects an order line whose quantity exceeds the
// product's available stock. It carries enough detail for a precise
// user-facing message.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: %d available, %d requested",
		e.ProductName, e.Available, e.Requested)
}

// ValidationError reports input that fails the engine's preconditions. The UI
// layer validates too, but the engine stays defensive.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
