package inventory

import (
	"testing"
	"time"

	"github.com/erp/mes/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func createTestLot(batch string, remaining float64, expiry *time.Time, created time.Time) LedgerEntry {
	lot := LedgerEntry{
		BaseEntity:  shared.NewBaseEntity(),
		BatchNumber: batch,
		ExpiryDate:  expiry,
		Quantity:    decimal.NewFromFloat(remaining),
		Remaining:   decimal.NewFromFloat(remaining),
		EntryType:   EntryTypePurchaseReceipt,
	}
	lot.CreatedAt = created
	return lot
}

func batchNumbers(lots []LedgerEntry) []string {
	out := make([]string, len(lots))
	for i, l := range lots {
		out[i] = l.BatchNumber
	}
	return out
}

func TestSortFEFO(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("earliest expiry first and no expiry last", func(t *testing.T) {
		lots := []LedgerEntry{
			createTestLot("NULL", 100, nil, base),
			createTestLot("FEB", 10, timePtr(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)), base.Add(time.Hour)),
			createTestLot("JAN", 5, timePtr(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)), base.Add(2*time.Hour)),
		}
		SortFEFO(lots)
		assert.Equal(t, []string{"JAN", "FEB", "NULL"}, batchNumbers(lots))
	})

	t.Run("same expiry falls back to creation time", func(t *testing.T) {
		exp := timePtr(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
		lots := []LedgerEntry{
			createTestLot("LATE", 1, exp, base.Add(time.Hour)),
			createTestLot("EARLY", 1, exp, base),
		}
		SortFEFO(lots)
		assert.Equal(t, []string{"EARLY", "LATE"}, batchNumbers(lots))
	})

	t.Run("lots without expiry are FIFO", func(t *testing.T) {
		lots := []LedgerEntry{
			createTestLot("SECOND", 1, nil, base.Add(time.Minute)),
			createTestLot("FIRST", 1, nil, base),
		}
		SortFEFO(lots)
		assert.Equal(t, []string{"FIRST", "SECOND"}, batchNumbers(lots))
	})
}

func TestFilterAvailable(t *testing.T) {
	now := time.Now()
	lots := []LedgerEntry{
		createTestLot("A", 0, nil, now),
		createTestLot("B", 3, nil, now),
	}
	available := FilterAvailable(lots)
	assert.Equal(t, []string{"B"}, batchNumbers(available))
}
