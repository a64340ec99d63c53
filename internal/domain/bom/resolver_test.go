package bom

import (
	"context"
	"testing"

	"github.com/erp/mes/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetBOM(ctx context.Context, id uuid.UUID) (*BOM, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*BOM), args.Error(1)
}

func (m *MockRepository) GetLines(ctx context.Context, bomID uuid.UUID) ([]Line, error) {
	args := m.Called(ctx, bomID)
	return args.Get(0).([]Line), args.Error(1)
}

func (m *MockRepository) GetLine(ctx context.Context, lineID uuid.UUID) (*Line, error) {
	args := m.Called(ctx, lineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Line), args.Error(1)
}

func (m *MockRepository) GetAlternatives(ctx context.Context, lineID uuid.UUID) ([]Alternative, error) {
	args := m.Called(ctx, lineID)
	return args.Get(0).([]Alternative), args.Error(1)
}

func (m *MockRepository) Save(ctx context.Context, b *BOM, alternatives map[uuid.UUID][]Alternative) error {
	args := m.Called(ctx, b, alternatives)
	return args.Error(0)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestBOM(outputQty string) *BOM {
	return &BOM{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  uuid.New(),
		Code:       "BOM-001",
		Version:    "1",
		Type:       TypeKitting,
		OutputQty:  dec(outputQty),
		IsActive:   true,
	}
}

func newTestLine(bomID uuid.UUID, qty, scrap string) Line {
	return Line{
		BaseEntity: shared.NewBaseEntity(),
		BOMID:      bomID,
		MaterialID: uuid.New(),
		Quantity:   dec(qty),
		ScrapRate:  dec(scrap),
		UOM:        "KG",
		Sequence:   1,
	}
}

func newTestAlternative(lineID uuid.UUID, qty string, priority int, active bool) Alternative {
	return Alternative{
		BaseEntity: shared.NewBaseEntity(),
		LineID:     lineID,
		MaterialID: uuid.New(),
		Quantity:   dec(qty),
		ScrapRate:  decimal.Zero,
		Priority:   priority,
		IsActive:   active,
	}
}

func TestResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("computes required quantity with scrap and 4dp rounding", func(t *testing.T) {
		repo := new(MockRepository)
		b := newTestBOM("3")
		line := newTestLine(b.ID, "1", "5")
		repo.On("GetBOM", ctx, b.ID).Return(b, nil)
		repo.On("GetLines", ctx, b.ID).Return([]Line{line}, nil)
		repo.On("GetAlternatives", ctx, line.ID).Return([]Alternative{}, nil)

		res, err := NewResolver(repo).Resolve(ctx, b.ID, dec("10"))
		require.NoError(t, err)
		require.Len(t, res.Requirements, 1)
		// 10 / 3 * 1 * 1.05 = 3.5
		assert.True(t, res.Requirements[0].RequiredQty.Equal(dec("3.5")), res.Requirements[0].RequiredQty.String())
		assert.Equal(t, line.MaterialID, res.Requirements[0].MaterialID)
		assert.Equal(t, "KG", res.Requirements[0].UOM)
		repo.AssertExpectations(t)
	})

	t.Run("keeps fractional precision instead of rounding to integers", func(t *testing.T) {
		repo := new(MockRepository)
		b := newTestBOM("3")
		line := newTestLine(b.ID, "1", "0")
		repo.On("GetBOM", ctx, b.ID).Return(b, nil)
		repo.On("GetLines", ctx, b.ID).Return([]Line{line}, nil)
		repo.On("GetAlternatives", ctx, line.ID).Return([]Alternative{}, nil)

		res, err := NewResolver(repo).Resolve(ctx, b.ID, dec("1"))
		require.NoError(t, err)
		assert.True(t, res.Requirements[0].RequiredQty.Equal(dec("0.3333")))
	})

	t.Run("end-to-end example requires 200", func(t *testing.T) {
		repo := new(MockRepository)
		b := newTestBOM("1")
		line := newTestLine(b.ID, "100", "0")
		repo.On("GetBOM", ctx, b.ID).Return(b, nil)
		repo.On("GetLines", ctx, b.ID).Return([]Line{line}, nil)
		repo.On("GetAlternatives", ctx, line.ID).Return([]Alternative{}, nil)

		res, err := NewResolver(repo).Resolve(ctx, b.ID, dec("2"))
		require.NoError(t, err)
		assert.True(t, res.Requirements[0].RequiredQty.Equal(dec("200")))
	})

	t.Run("orders active alternatives by priority with ratios", func(t *testing.T) {
		repo := new(MockRepository)
		b := newTestBOM("1")
		line := newTestLine(b.ID, "2", "0")
		second := newTestAlternative(line.ID, "4", 2, true)
		first := newTestAlternative(line.ID, "3", 1, true)
		inactive := newTestAlternative(line.ID, "1", 0, false)
		repo.On("GetBOM", ctx, b.ID).Return(b, nil)
		repo.On("GetLines", ctx, b.ID).Return([]Line{line}, nil)
		repo.On("GetAlternatives", ctx, line.ID).Return([]Alternative{second, inactive, first}, nil)

		res, err := NewResolver(repo).Resolve(ctx, b.ID, dec("1"))
		require.NoError(t, err)
		alts := res.Requirements[0].Alternatives
		require.Len(t, alts, 2)
		assert.Equal(t, first.MaterialID, alts[0].MaterialID)
		assert.True(t, alts[0].ConversionRatio.Equal(dec("1.5")))
		assert.Equal(t, second.MaterialID, alts[1].MaterialID)
		assert.True(t, alts[1].ConversionRatio.Equal(dec("2")))
	})

	t.Run("zero output quantity is a configuration error", func(t *testing.T) {
		repo := new(MockRepository)
		b := newTestBOM("0")
		repo.On("GetBOM", ctx, b.ID).Return(b, nil)

		_, err := NewResolver(repo).Resolve(ctx, b.ID, dec("1"))
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrConfiguration)
		repo.AssertNotCalled(t, "GetLines", mock.Anything, mock.Anything)
	})

	t.Run("zero-quantity alternative is a configuration error", func(t *testing.T) {
		repo := new(MockRepository)
		b := newTestBOM("1")
		line := newTestLine(b.ID, "2", "0")
		bad := newTestAlternative(line.ID, "0", 1, true)
		repo.On("GetBOM", ctx, b.ID).Return(b, nil)
		repo.On("GetLines", ctx, b.ID).Return([]Line{line}, nil)
		repo.On("GetAlternatives", ctx, line.ID).Return([]Alternative{bad}, nil)

		_, err := NewResolver(repo).Resolve(ctx, b.ID, dec("1"))
		assert.ErrorIs(t, err, shared.ErrConfiguration)
	})

	t.Run("inactive BOM is a validation error", func(t *testing.T) {
		repo := new(MockRepository)
		b := newTestBOM("1")
		b.IsActive = false
		repo.On("GetBOM", ctx, b.ID).Return(b, nil)

		_, err := NewResolver(repo).Resolve(ctx, b.ID, dec("1"))
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("non-positive planned quantity is rejected before loading", func(t *testing.T) {
		repo := new(MockRepository)
		_, err := NewResolver(repo).Resolve(ctx, uuid.New(), decimal.Zero)
		assert.ErrorIs(t, err, shared.ErrValidation)
		repo.AssertNotCalled(t, "GetBOM", mock.Anything, mock.Anything)
	})

	t.Run("missing BOM propagates not found", func(t *testing.T) {
		repo := new(MockRepository)
		id := uuid.New()
		repo.On("GetBOM", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := NewResolver(repo).Resolve(ctx, id, dec("1"))
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestResolver_LineAlternatives(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	line := newTestLine(uuid.New(), "1", "0")
	alt := newTestAlternative(line.ID, "2", 1, true)
	repo.On("GetLine", ctx, line.ID).Return(&line, nil)
	repo.On("GetAlternatives", ctx, line.ID).Return([]Alternative{alt}, nil)

	alts, err := NewResolver(repo).LineAlternatives(ctx, line.ID)
	require.NoError(t, err)
	require.Len(t, alts, 1)
	assert.True(t, alts[0].ConversionRatio.Equal(dec("2")))
	assert.Equal(t, alt.ID, alts[0].AlternativeID)
}

func TestType_IsValid(t *testing.T) {
	for _, typ := range []Type{TypeKitting, TypeCutting, TypeRepacking, TypeAssembly} {
		assert.True(t, typ.IsValid(), typ.String())
	}
	assert.False(t, Type("MIXING").IsValid())
}
