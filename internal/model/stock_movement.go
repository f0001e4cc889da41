package model

import "time"

// Well-known movement reasons written by the engine itself. Manual
// adjustments carry free-text reasons entered by the operator.
const (
	ReasonInitialImport = "Initial / Import"
	ReasonSale          = "Sale"
)

// StockMovement is one entry of the append-only inventory ledger. Entries are
// never mutated or deleted.
type StockMovement struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	ProductID string    `json:"product_id" gorm:"type:varchar(36);index;not null"`
	Change    int       `json:"change" gorm:"not null"`
	Reason    string    `json:"reason" gorm:"type:varchar(255)"`
	Timestamp time.Time `json:"timestamp" gorm:"index;not null"`
}
