// internal/domain/order/pricing_test.go
package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var storefrontRules = PricingRules{
	FreeShippingThreshold: 800000, // Rs 8,000
	FlatShippingFee:       20000,  // Rs 200
	TaxRateBps:            1800,   // 18% GST
}

func TestQuote_ShippingWaivedAtThreshold(t *testing.T) {
	tests := []struct {
		name         string
		subtotal     int64
		wantShipping int64
	}{
		{"below threshold", 500000, 20000},
		{"one paisa below threshold", 799999, 20000},
		{"exactly at threshold", 800000, 0},
		{"above threshold", 1200000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := storefrontRules.Quote(tt.subtotal)
			assert.Equal(t, tt.wantShipping, quote.Shipping)
		})
	}
}

func TestQuote_TaxAppliesToSubtotalOnly(t *testing.T) {
	quote := storefrontRules.Quote(100000)

	assert.Equal(t, int64(18000), quote.Tax)
	assert.Equal(t, int64(20000), quote.Shipping)
	assert.Equal(t, int64(138000), quote.Total)
}

func TestQuote_MixedCartBreakdown(t *testing.T) {
	// Two units at Rs 500 plus one at Rs 1,500
	subtotal := int64(50000*2 + 150000)

	quote := storefrontRules.Quote(subtotal)

	assert.Equal(t, int64(250000), quote.Subtotal)
	assert.Equal(t, int64(20000), quote.Shipping)
	assert.Equal(t, int64(45000), quote.Tax)
	assert.Equal(t, int64(315000), quote.Total)
}

func TestQuote_ZeroSubtotal(t *testing.T) {
	quote := storefrontRules.Quote(0)

	assert.Equal(t, int64(0), quote.Tax)
	assert.Equal(t, int64(20000), quote.Shipping)
	assert.Equal(t, int64(20000), quote.Total)
}
