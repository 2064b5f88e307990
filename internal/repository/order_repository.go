package repository

import (
	"context"

	"github.com/rugue/FullStackEcommerce/internal/domain/model"
)

// OrderListScope is the visibility predicate a list query runs under. A nil
// OwnerID means unscoped (all orders); otherwise the query filters on the
// owning buyer at the SQL layer, never client-side.
type OrderListScope struct {
	OwnerID *int64
}

// ScopeAll returns the unscoped predicate.
func ScopeAll() OrderListScope {
	return OrderListScope{}
}

// ScopeOwner restricts the query to orders owned by userID.
func ScopeOwner(userID int64) OrderListScope {
	return OrderListScope{OwnerID: &userID}
}

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (int64, error)
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	List(ctx context.Context, scope OrderListScope) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
}
