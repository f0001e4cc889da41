package model

import "time"

// Product represents the catalog master data. Stock is denormalized: it must
// equal the sum of all StockMovement.Change rows for the product.
type Product struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Price     float64   `json:"price" gorm:"not null"`
	CostPrice float64   `json:"cost_price" gorm:"not null"`
	Stock     int       `json:"stock" gorm:"not null;default:0"`
	ImagePath string    `json:"image_path" gorm:"type:varchar(512)"`
	Notes     string    `json:"notes" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
