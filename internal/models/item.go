package models

import "time"

// Item is a consumable stock-keeping unit. StockOnHand is only ever mutated
// through the stock ledger so that every change has a matching log entry.
type Item struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:200;not null" json:"name"`
	SKU          string    `gorm:"size:50;uniqueIndex;not null" json:"sku"`
	Barcode      *string   `gorm:"size:50;uniqueIndex" json:"barcode,omitempty"`
	StockOnHand  int       `gorm:"not null;default:0" json:"stock_on_hand"`
	ReorderLevel int       `gorm:"not null;default:5" json:"reorder_level"`
	Active       bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BelowReorderLevel reports whether the item should be flagged for restocking.
func (i Item) BelowReorderLevel() bool {
	return i.StockOnHand <= i.ReorderLevel
}
