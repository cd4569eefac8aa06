package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/storeroom-go-api/internal/models"
	"github.com/noah-isme/storeroom-go-api/internal/repository"
)

func openTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Department{},
		&models.Teacher{},
		&models.Item{},
		&models.Issue{},
		&models.IssueLine{},
		&models.InventoryLog{},
	))

	return db
}

func createTestItem(t *testing.T, db *gorm.DB, name string, stock int) models.Item {
	t.Helper()

	barcode := fmt.Sprintf("SS-%s", name)
	item := models.Item{
		Name:         name,
		SKU:          fmt.Sprintf("SKU-TEST-%s", name),
		Barcode:      &barcode,
		StockOnHand:  stock,
		ReorderLevel: 2,
		Active:       true,
	}
	require.NoError(t, db.Create(&item).Error)
	return item
}

func TestLedgerAdjustAppliesDeltaAndLogs(t *testing.T) {
	db := openTestDB(t, "ledger_adjust")
	item := createTestItem(t, db, "markers", 10)

	ledger := NewLedger(zerolog.Nop())
	txRunner := repository.NewTxRunner(db)
	actor := uint(7)

	var updated models.Item
	err := txRunner.Run(context.Background(), func(repos repository.TxRepos) error {
		result, err := ledger.Adjust(context.Background(), repos, AdjustmentInput{
			ItemID:  item.ID,
			Delta:   -3,
			Event:   models.EventIssue,
			RefType: "issue",
			Note:    "",
			ActorID: &actor,
		})
		if err != nil {
			return err
		}
		updated = result
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 7, updated.StockOnHand)

	var entries []models.InventoryLog
	require.NoError(t, db.Where("item_id = ?", item.ID).Find(&entries).Error)
	require.Len(t, entries, 1)
	require.Equal(t, models.EventIssue, entries[0].EventType)
	require.Equal(t, -3, entries[0].DeltaQty)
	require.Equal(t, actor, *entries[0].UserID)
}

func TestLedgerAdjustUnknownItem(t *testing.T) {
	db := openTestDB(t, "ledger_missing")

	ledger := NewLedger(zerolog.Nop())
	txRunner := repository.NewTxRunner(db)

	err := txRunner.Run(context.Background(), func(repos repository.TxRepos) error {
		_, err := ledger.Adjust(context.Background(), repos, AdjustmentInput{
			ItemID: 999,
			Delta:  5,
			Event:  models.EventRestock,
		})
		return err
	})
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestLedgerDeltaSumMatchesStock(t *testing.T) {
	db := openTestDB(t, "ledger_sum")
	item := createTestItem(t, db, "paper", 0)

	ledger := NewLedger(zerolog.Nop())
	txRunner := repository.NewTxRunner(db)
	logs := repository.NewInventoryLogRepository(db)

	deltas := []struct {
		delta int
		event string
	}{
		{20, models.EventRestock},
		{-4, models.EventIssue},
		{-1, models.EventAdjust},
		{5, models.EventRestock},
	}

	for _, d := range deltas {
		err := txRunner.Run(context.Background(), func(repos repository.TxRepos) error {
			_, err := ledger.Adjust(context.Background(), repos, AdjustmentInput{
				ItemID: item.ID,
				Delta:  d.delta,
				Event:  d.event,
			})
			return err
		})
		require.NoError(t, err)
	}

	var current models.Item
	require.NoError(t, db.First(&current, item.ID).Error)

	sum, err := logs.SumDeltas(context.Background(), item.ID)
	require.NoError(t, err)
	require.Equal(t, current.StockOnHand, sum)
	require.Equal(t, 20, current.StockOnHand)
}
