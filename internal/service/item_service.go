package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/storeroom-go-api/internal/dto"
	"github.com/noah-isme/storeroom-go-api/internal/models"
	"github.com/noah-isme/storeroom-go-api/internal/repository"
)

const skuAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ItemService manages the catalog. Stock is never written here directly:
// initial stock is seeded through the ledger so the audit trail starts at the
// item's first day.
type ItemService interface {
	Create(ctx context.Context, payload dto.ItemCreateRequest, actorID uint) (dto.ItemResponse, error)
	Get(ctx context.Context, id uint) (dto.ItemResponse, error)
	List(ctx context.Context, activeOnly bool) ([]dto.ItemResponse, error)
	Search(ctx context.Context, query string, limit int) ([]dto.ItemResponse, error)
	Update(ctx context.Context, id uint, payload dto.ItemUpdateRequest) (dto.ItemResponse, error)
}

type itemService struct {
	txRunner  repository.TxRunner
	items     repository.ItemRepository
	ledger    *Ledger
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewItemService constructs the catalog service.
func NewItemService(
	txRunner repository.TxRunner,
	items repository.ItemRepository,
	ledger *Ledger,
	validate *validator.Validate,
	logger zerolog.Logger,
) ItemService {
	return &itemService{
		txRunner:  txRunner,
		items:     items,
		ledger:    ledger,
		validator: validate,
		logger:    logger.With().Str("component", "item_service").Logger(),
	}
}

func (s *itemService) Create(ctx context.Context, payload dto.ItemCreateRequest, actorID uint) (dto.ItemResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ItemResponse{}, err
	}

	sku := strings.TrimSpace(payload.SKU)
	if sku == "" {
		sku = generateSKU()
	}

	barcodeValue := strings.TrimSpace(payload.Barcode)
	if barcodeValue == "" {
		barcodeValue = generateBarcodeValue()
	}

	reorder := payload.ReorderLevel
	if reorder == 0 {
		reorder = 5
	}

	item := models.Item{
		Name:         strings.TrimSpace(payload.Name),
		SKU:          sku,
		Barcode:      &barcodeValue,
		StockOnHand:  0,
		ReorderLevel: reorder,
		Active:       true,
	}

	err := s.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		if err := repos.Items.Create(ctx, &item); err != nil {
			return err
		}

		// Initial stock goes through the ledger so the first log entry
		// explains where the quantity came from.
		if payload.InitialStock > 0 {
			updated, err := s.ledger.Adjust(ctx, repos, AdjustmentInput{
				ItemID:  item.ID,
				Delta:   payload.InitialStock,
				Event:   models.EventAdjust,
				Note:    "initial stock",
				ActorID: &actorID,
			})
			if err != nil {
				return err
			}
			item = updated
		}
		return nil
	})
	if err != nil {
		return dto.ItemResponse{}, err
	}

	s.logger.Info().Uint("item_id", item.ID).Str("sku", item.SKU).Msg("item created")

	return dto.NewItemResponse(item), nil
}

func (s *itemService) Get(ctx context.Context, id uint) (dto.ItemResponse, error) {
	item, err := s.items.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ItemResponse{}, ErrItemNotFound
		}
		return dto.ItemResponse{}, err
	}
	return dto.NewItemResponse(item), nil
}

func (s *itemService) List(ctx context.Context, activeOnly bool) ([]dto.ItemResponse, error) {
	items, err := s.items.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	return dto.NewItemResponseSlice(items), nil
}

func (s *itemService) Search(ctx context.Context, query string, limit int) ([]dto.ItemResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []dto.ItemResponse{}, nil
	}

	items, err := s.items.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return dto.NewItemResponseSlice(items), nil
}

func (s *itemService) Update(ctx context.Context, id uint, payload dto.ItemUpdateRequest) (dto.ItemResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ItemResponse{}, err
	}

	item, err := s.items.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ItemResponse{}, ErrItemNotFound
		}
		return dto.ItemResponse{}, err
	}

	if payload.Name != nil {
		item.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.ReorderLevel != nil {
		item.ReorderLevel = *payload.ReorderLevel
	}
	if payload.Active != nil {
		item.Active = *payload.Active
	}

	if err := s.items.Save(ctx, &item); err != nil {
		return dto.ItemResponse{}, err
	}

	return dto.NewItemResponse(item), nil
}

// generateSKU builds "SKU-YYYYMMDD-XXXX" with a random alphanumeric suffix.
func generateSKU() string {
	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = skuAlphabet[rand.Intn(len(skuAlphabet))]
	}
	return fmt.Sprintf("SKU-%s-%s", time.Now().Format("20060102"), suffix)
}

// generateBarcodeValue builds a stable barcode string like "SS-102938".
// Rendering the value as an image is left to label tooling.
func generateBarcodeValue() string {
	return fmt.Sprintf("SS-%d", 100000+rand.Intn(900000))
}
