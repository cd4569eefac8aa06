package service

import (
	"context"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/storeroom-go-api/internal/dto"
	"github.com/noah-isme/storeroom-go-api/internal/models"
	"github.com/noah-isme/storeroom-go-api/internal/repository"
)

func newTestItemService(t *testing.T, db *gorm.DB) ItemService {
	t.Helper()

	return NewItemService(
		repository.NewTxRunner(db),
		repository.NewItemRepository(db),
		NewLedger(zerolog.Nop()),
		validator.New(validator.WithRequiredStructEnabled()),
		zerolog.Nop(),
	)
}

func TestItemCreateGeneratesIdentifiersAndSeedsStock(t *testing.T) {
	db := openTestDB(t, "item_create")
	svc := newTestItemService(t, db)

	item, err := svc.Create(context.Background(), dto.ItemCreateRequest{
		Name:         "  Whiteboard Marker ",
		InitialStock: 12,
		ReorderLevel: 4,
	}, 1)
	require.NoError(t, err)
	require.Equal(t, "Whiteboard Marker", item.Name)
	require.True(t, strings.HasPrefix(item.SKU, "SKU-"))
	require.True(t, strings.HasPrefix(item.Barcode, "SS-"))
	require.Equal(t, 12, item.StockOnHand)

	// Seeded stock is explained by a ledger entry, not a bare column write.
	var entry models.InventoryLog
	require.NoError(t, db.Where("item_id = ?", item.ID).First(&entry).Error)
	require.Equal(t, models.EventAdjust, entry.EventType)
	require.Equal(t, 12, entry.DeltaQty)
	require.Equal(t, "initial stock", entry.Note)
}

func TestItemCreateValidatesPayload(t *testing.T) {
	db := openTestDB(t, "item_create_invalid")
	svc := newTestItemService(t, db)

	_, err := svc.Create(context.Background(), dto.ItemCreateRequest{Name: ""}, 1)
	require.Error(t, err)
}

func TestItemSearchMatchesBarcodeFirst(t *testing.T) {
	db := openTestDB(t, "item_search")
	svc := newTestItemService(t, db)

	createTestItem(t, db, "blue pens", 5)
	target := createTestItem(t, db, "red pens", 5)

	results, err := svc.Search(context.Background(), *target.Barcode, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, target.ID, results[0].ID)

	results, err = svc.Search(context.Background(), "pens", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	results, err = svc.Search(context.Background(), "   ", 10)
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestItemUpdateMutableFields(t *testing.T) {
	db := openTestDB(t, "item_update")
	svc := newTestItemService(t, db)
	item := createTestItem(t, db, "notebooks", 5)

	name := "Spiral Notebooks"
	active := false
	updated, err := svc.Update(context.Background(), item.ID, dto.ItemUpdateRequest{
		Name:   &name,
		Active: &active,
	})
	require.NoError(t, err)
	require.Equal(t, "Spiral Notebooks", updated.Name)
	require.False(t, updated.Active)
	require.Equal(t, 5, updated.StockOnHand)

	_, err = svc.Update(context.Background(), 999, dto.ItemUpdateRequest{Name: &name})
	require.ErrorIs(t, err, ErrItemNotFound)
}
