// internal/domain/catalog/entity_test.go
package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProduct_Decorate(t *testing.T) {
	p := Product{Price: 299900, ComparePrice: 349900}
	p.Decorate()

	assert.Equal(t, "₹2,999", p.DisplayPrice)
	assert.Equal(t, 14, p.DiscountPercent)
}

func TestProduct_DecorateWithoutComparePrice(t *testing.T) {
	p := Product{Price: 49900}
	p.Decorate()

	assert.Equal(t, "₹499", p.DisplayPrice)
	assert.Equal(t, 0, p.DiscountPercent)
}

func TestProduct_IsInStock(t *testing.T) {
	assert.True(t, (&Product{TrackQuantity: true, Quantity: 5}).IsInStock())
	assert.False(t, (&Product{TrackQuantity: true, Quantity: 0}).IsInStock())
	assert.True(t, (&Product{TrackQuantity: false, Quantity: 0}).IsInStock())
}

func TestProduct_SizeAndColorOptions(t *testing.T) {
	p := Product{Sizes: "6,7, 8", Colors: ""}

	assert.Equal(t, []string{"6", "7", "8"}, p.SizeOptions())
	assert.Nil(t, p.ColorOptions())

	assert.True(t, p.HasSize("7"))
	assert.False(t, p.HasSize("12"))
	assert.False(t, p.HasSize(""))

	// Empty color is valid only when the product has no color options
	assert.True(t, p.HasColor(""))
	assert.False(t, p.HasColor("Red"))
}
