package cart

import (
	"github.com/shopspring/decimal"
)

// PricingConfig carries the storewide pricing knobs, loaded from site
// settings by the caller.
type PricingConfig struct {
	FreeShippingOver decimal.Decimal
	FlatShippingFee  decimal.Decimal
	TaxRate          decimal.Decimal
}

type PricedLine struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

type Quote struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Price computes subtotal, shipping, tax and total for a set of lines with
// frozen unit prices. Shipping is waived when the subtotal exceeds the
// free-shipping threshold. All amounts are rounded half-up to 2 decimal
// places; total = subtotal + shipping + tax holds exactly.
func Price(lines []PricedLine, cfg PricingConfig) Quote {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	subtotal = subtotal.Round(2)

	shipping := decimal.Zero
	if !subtotal.IsZero() && !subtotal.GreaterThan(cfg.FreeShippingOver) {
		shipping = cfg.FlatShippingFee.Round(2)
	}

	tax := subtotal.Mul(cfg.TaxRate).Round(2)

	return Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}
