package production

import (
	"testing"
	"time"

	"github.com/erp/mes/internal/domain/bom"
	"github.com/erp/mes/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func detailWithExpiry(actual string, expiry *time.Time) IssueDetail {
	return IssueDetail{
		BaseEntity: shared.NewBaseEntity(),
		ActualQty:  d(actual),
		ExpiryDate: expiry,
	}
}

func TestDeriveExpiry(t *testing.T) {
	details := []IssueDetail{
		detailWithExpiry("5", date(2025, 3, 1)),
		detailWithExpiry("5", nil),
		detailWithExpiry("5", date(2025, 1, 15)),
	}

	for _, typ := range []bom.Type{bom.TypeKitting, bom.TypeCutting, bom.TypeRepacking} {
		t.Run(typ.String(), func(t *testing.T) {
			got := DeriveExpiry(typ, details, nil)
			require.NotNil(t, got)
			assert.True(t, got.Equal(*date(2025, 1, 15)))
		})
	}

	t.Run("assembly derives nothing", func(t *testing.T) {
		assert.Nil(t, DeriveExpiry(bom.TypeAssembly, details, nil))
	})

	t.Run("fully returned details are ignored", func(t *testing.T) {
		returned := map[uuid.UUID]ReturnedTotals{
			details[2].ID: {Actual: d("5"), Equivalent: d("5")},
		}
		got := DeriveExpiry(bom.TypeKitting, details, returned)
		require.NotNil(t, got)
		assert.True(t, got.Equal(*date(2025, 3, 1)))
	})

	t.Run("partially returned details still count", func(t *testing.T) {
		returned := map[uuid.UUID]ReturnedTotals{
			details[2].ID: {Actual: d("4.9999"), Equivalent: d("4.9999")},
		}
		got := DeriveExpiry(bom.TypeKitting, details, returned)
		assert.True(t, got.Equal(*date(2025, 1, 15)))
	})

	t.Run("no expiries", func(t *testing.T) {
		assert.Nil(t, DeriveExpiry(bom.TypeKitting, []IssueDetail{detailWithExpiry("1", nil)}, nil))
	})
}
