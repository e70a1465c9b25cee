package reporting

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatAmount formats value with the grapheme, separators and fraction digits
// of the ISO currency code, e.g. "Rp1.500,00" for IDR or "$1,500.00" for USD.
// Digits beyond the currency's fraction are rounded half away from zero.
func FormatAmount(value decimal.Decimal, code string) string {
	cur := money.New(0, code).Currency()
	minor := value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}
