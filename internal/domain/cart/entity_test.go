// internal/domain/cart/entity_test.go
package cart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(productID uint, size, color string, price int64, quantity int) LineItem {
	return LineItem{
		ProductID: productID,
		Size:      size,
		Color:     color,
		Name:      "Test Product",
		Price:     price,
		Quantity:  quantity,
		AddedAt:   time.Now().UTC(),
	}
}

func TestLinesAdd_NewLine(t *testing.T) {
	lines := Lines{}
	lines = lines.Add(line(1, "M", "Red", 50000, 2))

	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, int64(50000), lines[0].Price)
}

func TestLinesAdd_MergesSameVariant(t *testing.T) {
	lines := Lines{}
	lines = lines.Add(line(1, "M", "Red", 50000, 2))
	lines = lines.Add(line(1, "M", "Red", 50000, 3))

	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestLinesAdd_DifferentVariantsStaySeparate(t *testing.T) {
	lines := Lines{}
	lines = lines.Add(line(1, "M", "Red", 50000, 1))
	lines = lines.Add(line(1, "L", "Red", 50000, 1))
	lines = lines.Add(line(1, "M", "Blue", 50000, 1))
	lines = lines.Add(line(2, "M", "Red", 70000, 1))

	assert.Len(t, lines, 4)
}

func TestLinesAdd_ZeroQuantityTreatedAsOne(t *testing.T) {
	lines := Lines{}
	lines = lines.Add(line(1, "", "", 50000, 0))

	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestLinesAdd_RefreshesPriceSnapshot(t *testing.T) {
	lines := Lines{}
	lines = lines.Add(line(1, "M", "", 50000, 1))
	lines = lines.Add(line(1, "M", "", 45000, 1))

	require.Len(t, lines, 1)
	assert.Equal(t, int64(45000), lines[0].Price)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestLinesSetQuantity(t *testing.T) {
	lines := Lines{}
	lines = lines.Add(line(1, "M", "Red", 50000, 2))
	key := LineKey{ProductID: 1, Size: "M", Color: "Red"}

	lines, found := lines.SetQuantity(key, 7)
	require.True(t, found)
	assert.Equal(t, 7, lines[0].Quantity)
}

func TestLinesSetQuantity_ZeroRemovesLine(t *testing.T) {
	lines := Lines{}
	lines = lines.Add(line(1, "M", "Red", 50000, 2))
	lines = lines.Add(line(2, "", "", 70000, 1))

	lines, found := lines.SetQuantity(LineKey{ProductID: 1, Size: "M", Color: "Red"}, 0)
	require.True(t, found)
	require.Len(t, lines, 1)
	assert.Equal(t, uint(2), lines[0].ProductID)
}

func TestLinesSetQuantity_WrongVariantNotMatched(t *testing.T) {
	lines := Lines{}
	lines = lines.Add(line(1, "M", "Red", 50000, 2))

	_, found := lines.SetQuantity(LineKey{ProductID: 1, Size: "L", Color: "Red"}, 5)
	assert.False(t, found)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestLinesRemove(t *testing.T) {
	lines := Lines{}
	lines = lines.Add(line(1, "M", "Red", 50000, 2))
	lines = lines.Add(line(2, "", "", 70000, 1))

	lines = lines.Remove(LineKey{ProductID: 1, Size: "M", Color: "Red"})
	require.Len(t, lines, 1)
	assert.Equal(t, uint(2), lines[0].ProductID)
}

func TestLinesRemove_AbsentLineIsNoOp(t *testing.T) {
	lines := Lines{}
	lines = lines.Add(line(1, "M", "Red", 50000, 2))

	lines = lines.Remove(LineKey{ProductID: 99})
	assert.Len(t, lines, 1)
}

func TestLinesTotals(t *testing.T) {
	lines := Lines{}
	lines = lines.Add(line(1, "M", "", 50000, 2))
	lines = lines.Add(line(2, "", "", 150000, 1))

	totals := lines.Totals()
	assert.Equal(t, 3, totals.ItemCount)
	assert.Equal(t, 2, totals.LineCount)
	assert.Equal(t, int64(250000), totals.Subtotal)
}

func TestLinesTotals_Empty(t *testing.T) {
	totals := Lines{}.Totals()
	assert.Equal(t, 0, totals.ItemCount)
	assert.Equal(t, 0, totals.LineCount)
	assert.Equal(t, int64(0), totals.Subtotal)
}

func TestLinesTotals_RecomputedAfterEveryMutation(t *testing.T) {
	lines := Lines{}
	lines = lines.Add(line(1, "M", "", 50000, 2))
	assert.Equal(t, int64(100000), lines.Totals().Subtotal)

	lines, _ = lines.SetQuantity(LineKey{ProductID: 1, Size: "M"}, 5)
	assert.Equal(t, int64(250000), lines.Totals().Subtotal)

	lines = lines.Remove(LineKey{ProductID: 1, Size: "M"})
	assert.Equal(t, int64(0), lines.Totals().Subtotal)
}

func TestCartItemLine_RoundTrip(t *testing.T) {
	item := CartItem{
		UserID:    7,
		ProductID: 1,
		Size:      "M",
		Color:     "Red",
		Name:      "Cricket Bat",
		Brand:     "GM",
		Price:     250000,
		Quantity:  2,
	}

	li := item.Line()
	assert.Equal(t, LineKey{ProductID: 1, Size: "M", Color: "Red"}, li.Key())
	assert.Equal(t, int64(250000), li.Price)
	assert.Equal(t, 2, li.Quantity)
}
