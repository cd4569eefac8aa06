package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/storeroom-go-api/internal/models"
	"github.com/noah-isme/storeroom-go-api/internal/repository"
)

// AdjustmentInput describes a single stock mutation. Delta is signed; the
// ledger records it exactly as given so history can be replayed.
type AdjustmentInput struct {
	ItemID  uint
	Delta   int
	Event   string
	RefType string
	RefID   *uint
	Note    string
	ActorID *uint
}

// Ledger is the single authority for mutating an item's stock on hand. Every
// call applies the delta and appends exactly one InventoryLog row, both staged
// in the caller's transaction: the ledger never commits by itself, so a caller
// can batch several adjustments atomically.
//
// The ledger deliberately does NOT enforce non-negative stock. Sufficiency is
// business policy and lives with the caller (the issuance workflow, manual
// adjustment paths), which keeps the ledger usable for forced corrections.
type Ledger struct {
	logger zerolog.Logger
}

// NewLedger constructs the stock ledger.
func NewLedger(logger zerolog.Logger) *Ledger {
	return &Ledger{logger: logger.With().Str("component", "stock_ledger").Logger()}
}

// Adjust applies the delta to the item and appends the matching log entry
// using the transaction-bound repositories. Returns the updated item.
func (l *Ledger) Adjust(ctx context.Context, repos repository.TxRepos, input AdjustmentInput) (models.Item, error) {
	item, err := repos.Items.Get(ctx, input.ItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Item{}, ErrItemNotFound
		}
		return models.Item{}, err
	}

	item.StockOnHand += input.Delta
	if err := repos.Items.Save(ctx, &item); err != nil {
		return models.Item{}, err
	}

	entry := models.InventoryLog{
		ItemID:    item.ID,
		EventType: input.Event,
		DeltaQty:  input.Delta,
		RefType:   input.RefType,
		RefID:     input.RefID,
		Note:      input.Note,
		UserID:    input.ActorID,
	}
	if err := repos.Logs.Create(ctx, &entry); err != nil {
		return models.Item{}, err
	}

	l.logger.Debug().
		Uint("item_id", item.ID).
		Str("event", input.Event).
		Int("delta", input.Delta).
		Int("stock_on_hand", item.StockOnHand).
		Msg("stock adjusted")

	return item, nil
}
