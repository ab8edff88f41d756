// internal/pkg/currency/currency.go
package currency

import (
	"fmt"
	"strings"
)

// Amounts are carried as int64 paise everywhere; formatting happens
// only at the presentation boundary.

// FromRupees converts a rupee amount to paise
func FromRupees(rupees float64) int64 {
	if rupees >= 0 {
		return int64(rupees*100 + 0.5)
	}
	return int64(rupees*100 - 0.5)
}

// ToRupees converts paise to a rupee amount
func ToRupees(paise int64) float64 {
	return float64(paise) / 100
}

// FormatINR formats a paise amount as ₹ with Indian digit grouping
// (last three digits, then groups of two), e.g. 123456789 -> "₹12,34,567.89"
func FormatINR(paise int64) string {
	negative := paise < 0
	if negative {
		paise = -paise
	}

	rupees := paise / 100
	fraction := paise % 100

	grouped := groupIndian(fmt.Sprintf("%d", rupees))

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("%s₹%s.%02d", sign, grouped, fraction)
}

// FormatINRWhole formats a paise amount without the fractional part,
// rounding down, e.g. for product listing prices
func FormatINRWhole(paise int64) string {
	negative := paise < 0
	if negative {
		paise = -paise
	}

	grouped := groupIndian(fmt.Sprintf("%d", paise/100))

	if negative {
		return "-₹" + grouped
	}
	return "₹" + grouped
}

// groupIndian inserts commas per the Indian numbering system
func groupIndian(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}

	var b strings.Builder
	head := digits[:n-3]
	tail := digits[n-3:]

	// Head is grouped in twos
	rem := len(head) % 2
	if rem == 1 {
		b.WriteString(head[:1])
		head = head[1:]
		if len(head) > 0 {
			b.WriteString(",")
		}
	}
	for i := 0; i < len(head); i += 2 {
		b.WriteString(head[i : i+2])
		if i+2 < len(head) {
			b.WriteString(",")
		}
	}

	b.WriteString(",")
	b.WriteString(tail)
	return b.String()
}

// GST returns the GST amount in paise for the given rate in basis points
func GST(amount int64, rateBps int64) int64 {
	return amount * rateBps / 10000
}

// DiscountPercent returns the rounded percentage discount of current
// over the compare-at price, or 0 when there is no discount
func DiscountPercent(comparePrice, price int64) int {
	if comparePrice <= 0 || price >= comparePrice {
		return 0
	}
	return int(((comparePrice-price)*100 + comparePrice/2) / comparePrice)
}
