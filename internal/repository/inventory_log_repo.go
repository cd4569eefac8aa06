package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/storeroom-go-api/internal/models"
)

// InventoryLogRepository appends and reads the audit ledger. Rows are never
// updated or deleted.
type InventoryLogRepository interface {
	Create(ctx context.Context, entry *models.InventoryLog) error
	ListByItem(ctx context.Context, itemID uint, limit int) ([]models.InventoryLog, error)
	SumDeltas(ctx context.Context, itemID uint) (int, error)
}

type inventoryLogRepository struct {
	db *gorm.DB
}

// NewInventoryLogRepository constructs a GORM-backed repository.
func NewInventoryLogRepository(db *gorm.DB) InventoryLogRepository {
	return &inventoryLogRepository{db: db}
}

func (r *inventoryLogRepository) Create(ctx context.Context, entry *models.InventoryLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *inventoryLogRepository) ListByItem(ctx context.Context, itemID uint, limit int) ([]models.InventoryLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var entries []models.InventoryLog
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// SumDeltas totals the signed deltas for one item. For a consistent ledger the
// result equals the item's current stock on hand.
func (r *inventoryLogRepository) SumDeltas(ctx context.Context, itemID uint) (int, error) {
	var sum *int
	if err := r.db.WithContext(ctx).
		Model(&models.InventoryLog{}).
		Where("item_id = ?", itemID).
		Select("SUM(delta_qty)").
		Scan(&sum).Error; err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}
