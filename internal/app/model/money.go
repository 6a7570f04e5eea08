package model

import "github.com/shopspring/decimal"

// MoneyScale is the number of fractional digits stored for amounts
const MoneyScale = 2

// ValidAmount reports whether d is a positive amount representable in storage
func ValidAmount(d decimal.Decimal) bool {
	return d.IsPositive() && d.Equal(d.Round(MoneyScale))
}
