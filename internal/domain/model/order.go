package model

import "time"

type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "New"
	OrderStatusPaid      OrderStatus = "Paid"
	OrderStatusFulfilled OrderStatus = "Fulfilled"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// ParseOrderStatus returns the status for s, or false when s is not a known
// lifecycle state.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusNew, OrderStatusPaid, OrderStatusFulfilled, OrderStatusCancelled:
		return OrderStatus(s), true
	default:
		return "", false
	}
}

// The lifecycle only moves forward: Fulfilled and Cancelled are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusNew:  {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid: {OrderStatusFulfilled, OrderStatusCancelled},
}

// CanTransition reports whether an order in status s may move to next.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	ID        int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time   `gorm:"not null;autoCreateTime" json:"createdAt"`
	Status    OrderStatus `gorm:"type:varchar(50);not null;default:'New'" json:"status"`

	// Set once at creation, never reassigned.
	UserID int64 `gorm:"not null;index" json:"userId"`

	StripePaymentIntentID string `gorm:"type:varchar(255)" json:"stripePaymentIntentId"`
}
