package persistence

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/erp/mes/internal/domain/inventory"
	"github.com/erp/mes/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory SQLite database with every model migrated.
// A single connection keeps every query on the same in-memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return db
}

// newMockGormDB creates a postgres-dialect gorm DB over sqlmock for asserting SQL shape
func newMockGormDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func day(year int, month time.Month, d int) *time.Time {
	t := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// seedLot inserts a purchase-receipt lot; createdAt orders lots sharing an expiry
func seedLot(t *testing.T, repo *GormLedgerRepository, productID, warehouseID uuid.UUID, batch string, qty int64, expiry *time.Time, createdAt time.Time) *inventory.LedgerEntry {
	t.Helper()

	lot, err := inventory.NewStockInEntry(inventory.StockIn{
		ProductID:          productID,
		WarehouseID:        warehouseID,
		BatchNumber:        batch,
		ExpiryDate:         expiry,
		Quantity:           decimal.NewFromInt(qty),
		EntryType:          inventory.EntryTypePurchaseReceipt,
		SourceType:         inventory.SourceTypeStockReceipt,
		SourceID:           uuid.New(),
		TransactionGroupID: uuid.New(),
		Actor:              "tester",
	})
	require.NoError(t, err)
	lot.CreatedAt = createdAt
	lot.UpdatedAt = createdAt
	require.NoError(t, repo.InsertLedgerEntry(t.Context(), lot))
	return lot
}
