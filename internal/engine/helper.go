package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// Clock supplies "now". Injected so expiry can be tested without sleeps.
type Clock func() time.Time

var tenThousand = decimal.NewFromInt(10000)

// bpsDown applies a basis-point reduction: v × (1 − bps/10000).
func bpsDown(v decimal.Decimal, bps int64) decimal.Decimal {
	return v.Mul(decimal.NewFromInt(1).Sub(decimal.NewFromInt(bps).Div(tenThousand)))
}

// bpsUp applies a basis-point improvement: v × (1 + bps/10000).
func bpsUp(v decimal.Decimal, bps int64) decimal.Decimal {
	return v.Mul(decimal.NewFromInt(1).Add(decimal.NewFromInt(bps).Div(tenThousand)))
}

// bpsOf returns bps/10000 of v.
func bpsOf(v decimal.Decimal, bps int64) decimal.Decimal {
	return v.Mul(decimal.NewFromInt(bps)).Div(tenThousand)
}

func roundAmount(v decimal.Decimal) decimal.Decimal {
	return v.Round(amountScale)
}

func roundRate(v decimal.Decimal) decimal.Decimal {
	return v.Round(rateScale)
}
