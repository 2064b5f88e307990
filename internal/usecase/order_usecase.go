package usecase

import (
	"context"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/rugue/FullStackEcommerce/internal/domain/model"
	"github.com/rugue/FullStackEcommerce/internal/metrics"
	repo "github.com/rugue/FullStackEcommerce/internal/repository"
)

type OrderUsecase struct {
	tx     repo.TransactionManager
	logger *log.Entry
	m      *metrics.OrderMetrics

	// see config.Config.OrderOwnershipCheck
	ownershipCheck bool
}

func NewOrderUsecase(tx repo.TransactionManager, logger *log.Entry, m *metrics.OrderMetrics, ownershipCheck bool) *OrderUsecase {
	if logger == nil {
		logger = log.New().WithField("component", "order-usecase")
	}
	return &OrderUsecase{tx: tx, logger: logger, m: m, ownershipCheck: ownershipCheck}
}

type OrderItemInput struct {
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type CreateOrderInput struct {
	Items []OrderItemInput
}

// OrderOutput is the order merged with its line items, the shape every
// order read returns.
type OrderOutput struct {
	ID                    int64             `json:"id"`
	CreatedAt             time.Time         `json:"createdAt"`
	Status                model.OrderStatus `json:"status"`
	UserID                int64             `json:"userId"`
	StripePaymentIntentID string            `json:"stripePaymentIntentId"`
	Items                 []model.OrderItem `json:"items"`
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	if items == nil {
		items = []model.OrderItem{}
	}
	return OrderOutput{
		ID:                    o.ID,
		CreatedAt:             o.CreatedAt,
		Status:                o.Status,
		UserID:                o.UserID,
		StripePaymentIntentID: o.StripePaymentIntentID,
		Items:                 items,
	}
}

// CreateOrder validates the request against the catalog and persists the
// order together with its line items in one transaction. Nothing is written
// when any validation fails, and a partially written order is never left
// behind - the transaction spans both inserts.
func (u *OrderUsecase) CreateOrder(ctx context.Context, userID int64, in CreateOrderInput) (OrderOutput, error) {
	if userID <= 0 {
		u.m.OrderRejected()
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid order data")
	}
	if len(in.Items) == 0 {
		u.m.OrderRejected()
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "order must contain at least one item")
	}
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			u.m.OrderRejected()
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "quantity must be a positive integer")
		}
		if it.Price < 0 {
			u.m.OrderRejected()
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "price must be non-negative")
		}
	}

	// distinct product ids; duplicates in the request are fine
	distinct := distinctProductIDs(in.Items)

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		existing, err := r.Products().ExistingIDs(ctx, distinct)
		if err != nil {
			return storeError(u.logger, "catalog lookup", err)
		}
		if len(existing) != len(distinct) {
			u.m.OrderRejected()
			return NewHTTPError(http.StatusBadRequest, "one or more products not found")
		}

		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID: userID,
			Status: model.OrderStatusNew,
		})
		if err != nil {
			return storeError(u.logger, "order insert", err)
		}

		rows := make([]model.OrderItem, 0, len(in.Items))
		for _, it := range in.Items {
			rows = append(rows, model.OrderItem{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				Price:     it.Price,
			})
		}
		created, err := r.OrderItems().CreateBulk(ctx, orderID, rows)
		if err != nil {
			return storeError(u.logger, "order items insert", err)
		}

		o, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return storeError(u.logger, "order read back", err)
		}

		out = toOrderOutput(o, created)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	u.m.OrderCreated()
	u.logger.WithFields(log.Fields{"order_id": out.ID, "user_id": userID, "items": len(out.Items)}).Info("order created")
	return out, nil
}

// GetOrder returns the order merged with its items. The not-found case is
// decided on the order row itself, so an order with zero items still comes
// back as a shell with an empty items array.
func (u *OrderUsecase) GetOrder(ctx context.Context, caller Caller, orderID int64) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return storeError(u.logger, "order read", err)
		}

		if !canAccessOrder(u.ownershipCheck, caller, o) {
			// hide existence from other users
			return NewHTTPError(http.StatusNotFound, "order not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return storeError(u.logger, "order items read", err)
		}

		out = toOrderOutput(o, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// ListOrders returns the orders visible to the caller, scoped by role at
// the query layer.
func (u *OrderUsecase) ListOrders(ctx context.Context, caller Caller) ([]model.Order, error) {
	if caller.UserID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var orders []model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		orders, err = r.Orders().List(ctx, listScopeFor(caller))
		if err != nil {
			return storeError(u.logger, "order list", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

// UpdateOrderStatus applies a status change after checking the lifecycle
// transition table. Invalid transitions are rejected before any write.
func (u *OrderUsecase) UpdateOrderStatus(ctx context.Context, caller Caller, orderID int64, status string) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	next, ok := model.ParseOrderStatus(status)
	if !ok {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "unknown status")
	}

	var out OrderOutput
	var from model.OrderStatus

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return storeError(u.logger, "order read", err)
		}

		if !canAccessOrder(u.ownershipCheck, caller, o) {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}

		if !o.Status.CanTransition(next) {
			return NewHTTPError(http.StatusBadRequest, "invalid status transition")
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, next); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "order not found")
			}
			return storeError(u.logger, "order status update", err)
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return storeError(u.logger, "order items read", err)
		}

		from = o.Status
		o.Status = next
		out = toOrderOutput(o, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	u.m.StatusTransition(string(from), string(next))
	u.logger.WithFields(log.Fields{"order_id": orderID, "from": from, "to": next}).Info("order status updated")
	return out, nil
}

func distinctProductIDs(items []OrderItemInput) []int64 {
	seen := make(map[int64]struct{}, len(items))
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		ids = append(ids, it.ProductID)
	}
	return ids
}
