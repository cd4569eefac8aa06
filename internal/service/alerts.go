package service

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/noah-isme/storeroom-go-api/internal/dto"
	"github.com/noah-isme/storeroom-go-api/internal/models"
)

const lowStockSubject = "storeroom.stock.low"

// StockNotifier receives items after a committed stock mutation.
type StockNotifier interface {
	Notify(item models.Item)
}

// StockAlerter publishes low-stock events after committed mutations. Delivery
// is fire-and-forget; a publish failure never fails the mutation.
type StockAlerter struct {
	nats   *nats.Conn
	logger zerolog.Logger
}

// NewStockAlerter constructs an alerter. A nil connection disables publishing.
func NewStockAlerter(conn *nats.Conn, logger zerolog.Logger) *StockAlerter {
	return &StockAlerter{
		nats:   conn,
		logger: logger.With().Str("component", "stock_alerter").Logger(),
	}
}

// Notify publishes an alert when the item sits at or below its reorder level.
func (a *StockAlerter) Notify(item models.Item) {
	if a.nats == nil || !item.BelowReorderLevel() {
		return
	}

	alert := dto.LowStockAlert{
		ItemID:       item.ID,
		Name:         item.Name,
		SKU:          item.SKU,
		StockOnHand:  item.StockOnHand,
		ReorderLevel: item.ReorderLevel,
		At:           time.Now().UTC(),
	}

	payload, err := json.Marshal(alert)
	if err != nil {
		return
	}

	if err := a.nats.Publish(lowStockSubject, payload); err != nil {
		a.logger.Warn().Err(err).Uint("item_id", item.ID).Msg("failed to publish low stock alert")
		return
	}

	a.logger.Info().Uint("item_id", item.ID).Int("stock_on_hand", item.StockOnHand).Msg("low stock alert published")
}
