package dto

import (
	"time"

	"github.com/noah-isme/storeroom-go-api/internal/models"
)

// RestockRequest adds stock to an item.
type RestockRequest struct {
	ItemID uint   `json:"item_id" validate:"required"`
	Qty    int    `json:"qty" validate:"required,gt=0"`
	Note   string `json:"note" validate:"max=255"`
}

// AdjustmentRequest applies a signed correction to an item's stock.
type AdjustmentRequest struct {
	ItemID uint   `json:"item_id" validate:"required"`
	Delta  int    `json:"delta" validate:"required"`
	Note   string `json:"note" validate:"max=255"`
}

// LedgerEntryResponse is one row of an item's audit trail.
type LedgerEntryResponse struct {
	ID        uint      `json:"id"`
	ItemID    uint      `json:"item_id"`
	EventType string    `json:"event_type"`
	DeltaQty  int       `json:"delta_qty"`
	RefType   string    `json:"ref_type,omitempty"`
	RefID     *uint     `json:"ref_id,omitempty"`
	Note      string    `json:"note,omitempty"`
	UserID    *uint     `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewLedgerEntryResponseSlice maps ledger rows to their API shape.
func NewLedgerEntryResponseSlice(entries []models.InventoryLog) []LedgerEntryResponse {
	responses := make([]LedgerEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, LedgerEntryResponse{
			ID:        entry.ID,
			ItemID:    entry.ItemID,
			EventType: entry.EventType,
			DeltaQty:  entry.DeltaQty,
			RefType:   entry.RefType,
			RefID:     entry.RefID,
			Note:      entry.Note,
			UserID:    entry.UserID,
			CreatedAt: entry.CreatedAt,
		})
	}
	return responses
}

// LowStockAlert is the event published when a mutation leaves an item at or
// below its reorder level.
type LowStockAlert struct {
	ItemID       uint      `json:"item_id"`
	Name         string    `json:"name"`
	SKU          string    `json:"sku"`
	StockOnHand  int       `json:"stock_on_hand"`
	ReorderLevel int       `json:"reorder_level"`
	At           time.Time `json:"at"`
}
