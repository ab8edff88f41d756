// internal/domain/order/sequence_test.go
package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatOrderNumber(t *testing.T) {
	tests := []struct {
		year int
		seq  int64
		want string
	}{
		{2026, 1, "GS-2026-001"},
		{2026, 42, "GS-2026-042"},
		{2026, 999, "GS-2026-999"},
		{2026, 1000, "GS-2026-1000"}, // Padding grows past three digits
		{2027, 1, "GS-2027-001"},     // New year restarts the sequence
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatOrderNumber(tt.year, tt.seq))
	}
}
