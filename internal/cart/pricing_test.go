package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func defaultPricing() PricingConfig {
	return PricingConfig{
		FreeShippingOver: d("500"),
		FlatShippingFee:  d("25"),
		TaxRate:          d("0.08"),
	}
}

func TestPriceLuxuryOrder(t *testing.T) {
	// $12,500 bag: free shipping, $1,000 tax, $13,500 total
	q := Price([]PricedLine{{UnitPrice: d("12500.00"), Quantity: 1}}, defaultPricing())
	assert.True(t, q.Subtotal.Equal(d("12500.00")), "subtotal %s", q.Subtotal)
	assert.True(t, q.Shipping.IsZero(), "shipping %s", q.Shipping)
	assert.True(t, q.Tax.Equal(d("1000.00")), "tax %s", q.Tax)
	assert.True(t, q.Total.Equal(d("13500.00")), "total %s", q.Total)
}

func TestPriceShippingThreshold(t *testing.T) {
	cfg := defaultPricing()

	// exactly at the threshold still pays shipping
	atLimit := Price([]PricedLine{{UnitPrice: d("500.00"), Quantity: 1}}, cfg)
	assert.True(t, atLimit.Shipping.Equal(d("25")), "shipping at threshold %s", atLimit.Shipping)

	// one cent over and shipping is waived
	over := Price([]PricedLine{{UnitPrice: d("500.01"), Quantity: 1}}, cfg)
	assert.True(t, over.Shipping.IsZero(), "shipping over threshold %s", over.Shipping)

	below := Price([]PricedLine{{UnitPrice: d("120.00"), Quantity: 2}}, cfg)
	assert.True(t, below.Shipping.Equal(d("25")), "shipping below threshold %s", below.Shipping)
}

func TestPriceEmptyCart(t *testing.T) {
	q := Price(nil, defaultPricing())
	assert.True(t, q.Subtotal.IsZero())
	assert.True(t, q.Shipping.IsZero(), "empty cart must not charge shipping")
	assert.True(t, q.Tax.IsZero())
	assert.True(t, q.Total.IsZero())
}

func TestPriceTotalIdentity(t *testing.T) {
	cfg := defaultPricing()
	cases := [][]PricedLine{
		{{UnitPrice: d("19.99"), Quantity: 3}},
		{{UnitPrice: d("0.01"), Quantity: 1}},
		{{UnitPrice: d("333.33"), Quantity: 1}, {UnitPrice: d("166.68"), Quantity: 1}},
		{{UnitPrice: d("8200.00"), Quantity: 1}, {UnitPrice: d("5600.00"), Quantity: 2}},
	}
	for _, lines := range cases {
		q := Price(lines, cfg)
		sum := q.Subtotal.Add(q.Shipping).Add(q.Tax)
		require.True(t, q.Total.Equal(sum), "total %s != %s", q.Total, sum)
		assert.True(t, q.Tax.Exponent() >= -2, "tax has more than 2 decimals: %s", q.Tax)
	}
}

func TestPriceTaxRoundsHalfUp(t *testing.T) {
	cfg := PricingConfig{
		FreeShippingOver: d("500"),
		FlatShippingFee:  d("25"),
		TaxRate:          d("0.075"),
	}
	// 10.10 * 0.075 = 0.7575 -> 0.76
	q := Price([]PricedLine{{UnitPrice: d("10.10"), Quantity: 1}}, cfg)
	assert.True(t, q.Tax.Equal(d("0.76")), "tax %s", q.Tax)
}
