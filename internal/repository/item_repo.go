package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/noah-isme/storeroom-go-api/internal/models"
)

// ItemRepository persists catalog items. Lookups return gorm.ErrRecordNotFound
// when the item does not exist.
type ItemRepository interface {
	Get(ctx context.Context, id uint) (models.Item, error)
	GetByBarcode(ctx context.Context, barcode string) (models.Item, error)
	List(ctx context.Context, activeOnly bool) ([]models.Item, error)
	Search(ctx context.Context, query string, limit int) ([]models.Item, error)
	Create(ctx context.Context, item *models.Item) error
	Save(ctx context.Context, item *models.Item) error
}

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository constructs a GORM-backed repository. The db handle may be
// a transaction, in which case all operations stay inside it.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Get(ctx context.Context, id uint) (models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return models.Item{}, err
	}
	return item, nil
}

func (r *itemRepository) GetByBarcode(ctx context.Context, barcode string) (models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).Where("barcode = ?", barcode).First(&item).Error; err != nil {
		return models.Item{}, err
	}
	return item, nil
}

func (r *itemRepository) List(ctx context.Context, activeOnly bool) ([]models.Item, error) {
	query := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var items []models.Item
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) Search(ctx context.Context, query string, limit int) ([]models.Item, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	// An exact barcode hit wins so that scanned codes resolve to one item.
	if item, err := r.GetByBarcode(ctx, query); err == nil {
		return []models.Item{item}, nil
	}

	pattern := "%" + strings.ToLower(query) + "%"

	var items []models.Item
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", pattern, pattern).
		Order("name ASC").
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) Create(ctx context.Context, item *models.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepository) Save(ctx context.Context, item *models.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}
