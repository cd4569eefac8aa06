package service

import (
	"context"
	"errors"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/storeroom-go-api/internal/dto"
	"github.com/noah-isme/storeroom-go-api/internal/models"
	"github.com/noah-isme/storeroom-go-api/internal/observability"
	"github.com/noah-isme/storeroom-go-api/internal/repository"
)

// InventoryService exposes the manual stock paths: restocking, signed
// corrections and per-item history. Both mutation paths go through the stock
// ledger inside one transaction and keep stock non-negative; the sufficiency
// policy lives here, not in the ledger.
type InventoryService interface {
	Restock(ctx context.Context, itemID uint, qty int, note string, actorID uint) (dto.ItemResponse, error)
	Adjust(ctx context.Context, itemID uint, delta int, note string, actorID uint) (dto.ItemResponse, error)
	History(ctx context.Context, itemID uint, limit int) ([]dto.LedgerEntryResponse, error)
}

type inventoryService struct {
	txRunner  repository.TxRunner
	items     repository.ItemRepository
	logs      repository.InventoryLogRepository
	ledger    *Ledger
	alerter   StockNotifier
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewInventoryService constructs the manual inventory paths.
func NewInventoryService(
	txRunner repository.TxRunner,
	items repository.ItemRepository,
	logs repository.InventoryLogRepository,
	ledger *Ledger,
	alerter StockNotifier,
	logger zerolog.Logger,
) InventoryService {
	return &inventoryService{
		txRunner:  txRunner,
		items:     items,
		logs:      logs,
		ledger:    ledger,
		alerter:   alerter,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "inventory_service").Logger(),
	}
}

func (s *inventoryService) Restock(ctx context.Context, itemID uint, qty int, note string, actorID uint) (dto.ItemResponse, error) {
	if qty <= 0 {
		return dto.ItemResponse{}, ErrInvalidQuantity
	}

	note = s.cleanNote(note, "manual restock")

	var updated models.Item
	err := s.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		item, err := s.ledger.Adjust(ctx, repos, AdjustmentInput{
			ItemID:  itemID,
			Delta:   qty,
			Event:   models.EventRestock,
			Note:    note,
			ActorID: &actorID,
		})
		if err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return dto.ItemResponse{}, err
	}

	observability.LedgerAdjustments().WithLabelValues(models.EventRestock).Inc()
	s.alerter.Notify(updated)
	s.logger.Info().Uint("item_id", itemID).Int("qty", qty).Msg("item restocked")

	return dto.NewItemResponse(updated), nil
}

func (s *inventoryService) Adjust(ctx context.Context, itemID uint, delta int, note string, actorID uint) (dto.ItemResponse, error) {
	if delta == 0 {
		return dto.ItemResponse{}, ErrInvalidQuantity
	}

	note = s.cleanNote(note, "manual adjustment")

	var updated models.Item
	err := s.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		item, err := repos.Items.Get(ctx, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return err
		}

		// Caller-side policy: corrections may subtract but never drive
		// stock negative.
		if item.StockOnHand+delta < 0 {
			return ErrInsufficientStock
		}

		item, err = s.ledger.Adjust(ctx, repos, AdjustmentInput{
			ItemID:  itemID,
			Delta:   delta,
			Event:   models.EventAdjust,
			Note:    note,
			ActorID: &actorID,
		})
		if err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return dto.ItemResponse{}, err
	}

	observability.LedgerAdjustments().WithLabelValues(models.EventAdjust).Inc()
	s.alerter.Notify(updated)
	s.logger.Info().Uint("item_id", itemID).Int("delta", delta).Msg("stock adjusted manually")

	return dto.NewItemResponse(updated), nil
}

func (s *inventoryService) History(ctx context.Context, itemID uint, limit int) ([]dto.LedgerEntryResponse, error) {
	if _, err := s.items.Get(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	entries, err := s.logs.ListByItem(ctx, itemID, limit)
	if err != nil {
		return nil, err
	}

	return dto.NewLedgerEntryResponseSlice(entries), nil
}

func (s *inventoryService) cleanNote(note, fallback string) string {
	note = strings.TrimSpace(s.sanitizer.Sanitize(note))
	if note == "" {
		return fallback
	}
	return note
}
