package models

import "time"

// Ledger event kinds.
const (
	EventRestock = "RESTOCK"
	EventIssue   = "ISSUE"
	EventAdjust  = "ADJUST"
	EventVoid    = "VOID"
)

// InventoryLog is an append-only audit record of a single stock mutation.
// For every item the sum of DeltaQty across its log rows equals the item's
// current StockOnHand.
type InventoryLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ItemID    uint      `gorm:"not null;index:idx_inv_item_created" json:"item_id"`
	EventType string    `gorm:"size:50;not null" json:"event_type"`
	DeltaQty  int       `gorm:"not null" json:"delta_qty"`
	RefType   string    `gorm:"size:50" json:"ref_type,omitempty"`
	RefID     *uint     `json:"ref_id,omitempty"`
	Note      string    `gorm:"size:255" json:"note,omitempty"`
	UserID    *uint     `json:"user_id,omitempty"`
	CreatedAt time.Time `gorm:"index:idx_inv_item_created" json:"created_at"`
}
