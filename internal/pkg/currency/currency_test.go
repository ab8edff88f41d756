// internal/pkg/currency/currency_test.go
package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRupees(t *testing.T) {
	assert.Equal(t, int64(0), FromRupees(0))
	assert.Equal(t, int64(100), FromRupees(1))
	assert.Equal(t, int64(249999), FromRupees(2499.99))
	assert.Equal(t, int64(800000), FromRupees(8000))
	assert.Equal(t, int64(-20050), FromRupees(-200.50))
}

func TestToRupees(t *testing.T) {
	assert.Equal(t, 0.0, ToRupees(0))
	assert.Equal(t, 200.0, ToRupees(20000))
	assert.Equal(t, 3150.75, ToRupees(315075))
}

func TestFormatINR(t *testing.T) {
	tests := []struct {
		name  string
		paise int64
		want  string
	}{
		{"zero", 0, "₹0.00"},
		{"under a thousand", 99900, "₹999.00"},
		{"thousands", 123456, "₹1,234.56"},
		{"lakhs", 12345678, "₹1,23,456.78"},
		{"crores", 123456789, "₹12,34,567.89"},
		{"free shipping threshold", 800000, "₹8,000.00"},
		{"negative", -20000, "-₹200.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatINR(tt.paise))
		})
	}
}

func TestFormatINRWhole(t *testing.T) {
	assert.Equal(t, "₹2,499", FormatINRWhole(249999))
	assert.Equal(t, "₹8,000", FormatINRWhole(800000))
	assert.Equal(t, "₹12,34,567", FormatINRWhole(123456789))
	assert.Equal(t, "-₹200", FormatINRWhole(-20050))
}

func TestGST(t *testing.T) {
	// 18% on common amounts
	assert.Equal(t, int64(18000), GST(100000, 1800))
	assert.Equal(t, int64(45000), GST(250000, 1800))
	assert.Equal(t, int64(0), GST(0, 1800))

	// Truncation on amounts that do not divide evenly
	assert.Equal(t, int64(17), GST(99, 1800))
}

func TestDiscountPercent(t *testing.T) {
	assert.Equal(t, 25, DiscountPercent(400000, 300000))
	assert.Equal(t, 50, DiscountPercent(200000, 100000))

	// Rounds to the nearest whole percent
	assert.Equal(t, 33, DiscountPercent(300000, 200000))

	// No discount cases
	assert.Equal(t, 0, DiscountPercent(0, 100000))
	assert.Equal(t, 0, DiscountPercent(100000, 100000))
	assert.Equal(t, 0, DiscountPercent(100000, 150000))
}
