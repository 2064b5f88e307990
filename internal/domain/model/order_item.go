package model

// OrderItem captures quantity and price as submitted at order time. A later
// price change on the product never alters historical orders.
type OrderItem struct {
	ID        int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64   `gorm:"not null;index" json:"orderId"`
	ProductID int64   `gorm:"not null;index" json:"productId"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"`
}
