package dto

import (
	"time"

	"github.com/noah-isme/storeroom-go-api/internal/models"
)

// ItemCreateRequest creates a catalog item. SKU and barcode are generated when
// omitted; initial stock is seeded through the ledger.
type ItemCreateRequest struct {
	Name         string `json:"name" validate:"required,max=200"`
	SKU          string `json:"sku" validate:"omitempty,max=50"`
	Barcode      string `json:"barcode" validate:"omitempty,max=50"`
	InitialStock int    `json:"initial_stock" validate:"gte=0"`
	ReorderLevel int    `json:"reorder_level" validate:"gte=0"`
}

// ItemUpdateRequest changes the mutable non-stock fields of an item.
type ItemUpdateRequest struct {
	Name         *string `json:"name" validate:"omitempty,max=200"`
	ReorderLevel *int    `json:"reorder_level" validate:"omitempty,gte=0"`
	Active       *bool   `json:"active"`
}

// ItemResponse is the API shape of a catalog item.
type ItemResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	SKU          string    `json:"sku"`
	Barcode      string    `json:"barcode,omitempty"`
	StockOnHand  int       `json:"stock_on_hand"`
	ReorderLevel int       `json:"reorder_level"`
	LowStock     bool      `json:"low_stock"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewItemResponse maps a model to its API shape.
func NewItemResponse(item models.Item) ItemResponse {
	barcode := ""
	if item.Barcode != nil {
		barcode = *item.Barcode
	}

	return ItemResponse{
		ID:           item.ID,
		Name:         item.Name,
		SKU:          item.SKU,
		Barcode:      barcode,
		StockOnHand:  item.StockOnHand,
		ReorderLevel: item.ReorderLevel,
		LowStock:     item.BelowReorderLevel(),
		Active:       item.Active,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

// NewItemResponseSlice maps a slice of models.
func NewItemResponseSlice(items []models.Item) []ItemResponse {
	responses := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, NewItemResponse(item))
	}
	return responses
}
