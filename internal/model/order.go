package model

import "time"

// Order is the POS checkout header. Total is computed from the line items at
// creation time and frozen; orders are never edited or deleted afterwards.
type Order struct {
	ID        string      `json:"id" gorm:"type:varchar(36);primaryKey"`
	CreatedAt time.Time   `json:"created_at" gorm:"index"`
	Total     float64     `json:"total" gorm:"not null"`
	Items     []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

// OrderItem is one product line of an order. Price and CostPrice are
// snapshots of the product's prices at sale time, so later catalog edits do
// not rewrite historical revenue or profit.
type OrderItem struct {
	ID        string  `json:"id" gorm:"type:varchar(36);primaryKey"`
	OrderID   string  `json:"order_id" gorm:"type:varchar(36);index;not null"`
	ProductID string  `json:"product_id" gorm:"type:varchar(36);index;not null"`
	Qty       int     `json:"qty" gorm:"not null"`
	Price     float64 `json:"price" gorm:"not null"`
	CostPrice float64 `json:"cost_price" gorm:"not null"`
}
