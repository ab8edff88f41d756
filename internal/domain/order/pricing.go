// internal/domain/order/pricing.go
package order

import "github.com/gearup-sports/storefront-backend/internal/pkg/currency"

// PricingRules holds the storefront pricing parameters in paise and
// basis points. The zero value charges nothing; callers build it from
// config.
type PricingRules struct {
	FreeShippingThreshold int64 // Subtotal at or above this ships free
	FlatShippingFee       int64
	TaxRateBps            int64
}

// Quote is the derived price breakdown for a subtotal. All amounts are
// in paise.
type Quote struct {
	Subtotal int64 `json:"subtotal"`
	Shipping int64 `json:"shipping"`
	Tax      int64 `json:"tax"`
	Total    int64 `json:"total"`
}

// Quote derives shipping, tax and total from a cart subtotal. Shipping
// is a flat fee waived at the free-shipping threshold; tax applies to
// the subtotal only, not to shipping.
func (r PricingRules) Quote(subtotal int64) Quote {
	shipping := r.FlatShippingFee
	if subtotal >= r.FreeShippingThreshold {
		shipping = 0
	}

	tax := currency.GST(subtotal, r.TaxRateBps)

	return Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal + shipping + tax,
	}
}
