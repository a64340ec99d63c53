package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDomainError_IsMatchesByCode(t *testing.T) {
	err := NewInsufficientStockError("m-1")

	assert.True(t, errors.Is(err, ErrInsufficientStock))
	assert.False(t, errors.Is(err, ErrValidation))
	assert.True(t, errors.Is(fmt.Errorf("issue order: %w", err), ErrInsufficientStock))
	assert.Contains(t, err.Error(), "m-1")
}

func TestIsCode(t *testing.T) {
	wrapped := fmt.Errorf("tx: %w", NewNotFoundError("Production order", "PO-1"))

	assert.True(t, IsCode(wrapped, CodeNotFound))
	assert.False(t, IsCode(wrapped, CodeValidation))
	assert.False(t, IsCode(errors.New("plain"), CodeNotFound))
	assert.False(t, IsCode(nil, CodeNotFound))
}

func TestNewReturnExceedsIssuedError(t *testing.T) {
	err := NewReturnExceedsIssuedError(decimal.RequireFromString("41"), decimal.RequireFromString("40"))

	assert.Equal(t, CodeReturnExceedsIssued, err.Code)
	assert.Equal(t, "Return quantity 41 exceeds returnable balance 40", err.Message)
}

func TestQuantityRounding(t *testing.T) {
	assert.Equal(t, "0.3333", RoundQuantity(decimal.NewFromInt(1).Div(decimal.NewFromInt(3))).String())
	assert.Equal(t, "0.3334", CeilQuantity(decimal.NewFromInt(1).Div(decimal.NewFromInt(3))).String())
	assert.Equal(t, "0.66666667", RoundRatio(decimal.NewFromInt(2).Div(decimal.NewFromInt(3))).String())
	assert.Equal(t, "2", MinDecimal(decimal.NewFromInt(2), decimal.NewFromInt(5)).String())
}

func TestFilter_Offset(t *testing.T) {
	assert.Equal(t, 0, Filter{}.Offset())
	assert.Equal(t, 40, Filter{Page: 3, PageSize: 20}.Offset())
	assert.Equal(t, 0, DefaultFilter().Offset())
}
