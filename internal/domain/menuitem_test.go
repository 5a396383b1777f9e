package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func stock(v int) *int { return &v }

func TestHasAllergenIsCaseInsensitive(t *testing.T) {
	m := &MenuItem{AllergenTags: datatypes.NewJSONSlice([]string{"Peanuts", "Wheat"})}

	assert.True(t, m.HasAllergen("peanuts"))
	assert.True(t, m.HasAllergen("PEANUTS"))
	assert.True(t, m.HasAllergen("Wheat"))
	assert.False(t, m.HasAllergen("Dairy"))
}

func TestIsInStockUnlimited(t *testing.T) {
	m := &MenuItem{DailyStockCount: nil}

	assert.True(t, m.IsInStock(1000))
}

func TestIsInStockBoundaries(t *testing.T) {
	m := &MenuItem{DailyStockCount: stock(5)}

	assert.True(t, m.IsInStock(5))
	assert.False(t, m.IsInStock(6))
}

func TestDecrementStockReducesCount(t *testing.T) {
	m := &MenuItem{DailyStockCount: stock(50)}

	require.NoError(t, m.DecrementStock(2))
	assert.Equal(t, 48, *m.DailyStockCount)
}

func TestDecrementStockToZero(t *testing.T) {
	m := &MenuItem{DailyStockCount: stock(2)}

	require.NoError(t, m.DecrementStock(2))
	assert.Equal(t, 0, *m.DailyStockCount)
}

func TestDecrementStockInsufficientFails(t *testing.T) {
	m := &MenuItem{Name: "Chicken Sandwich", DailyStockCount: stock(1)}

	err := m.DecrementStock(2)

	ve, ok := AsValidation(err)
	require.True(t, ok, "expected validation error, got %v", err)
	assert.Equal(t, CodeInsufficientStock, ve.Code)
	assert.Equal(t, 1, *m.DailyStockCount, "stock must be untouched")
}

func TestDecrementStockUnlimitedIsNoop(t *testing.T) {
	m := &MenuItem{DailyStockCount: nil}

	require.NoError(t, m.DecrementStock(100))
	assert.Nil(t, m.DailyStockCount)
}
