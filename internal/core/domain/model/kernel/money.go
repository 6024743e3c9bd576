package kernel

import "github.com/shopspring/decimal"

// MoneyPlaces is the number of decimal places kept for subtotals and totals.
const MoneyPlaces int32 = 2

// RoundMoney rounds an amount to MoneyPlaces, half away from zero.
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyPlaces)
}
