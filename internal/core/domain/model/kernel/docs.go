// Package kernel provides the primitives shared by every aggregate of the
// restaurant order domain:
//   - UUID: identifier value object with validation and JSON text encoding
//   - RoundMoney: the single rounding rule for subtotals and totals
//   - BusinessDate: the local calendar day that scopes daily order numbers
package kernel
