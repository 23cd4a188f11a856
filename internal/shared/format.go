package shared

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amountPrinter = message.NewPrinter(language.English)

// FormatAmount renders a money amount with comma grouping and two
// decimal places, e.g. 12345 -> "12,345.00".
func FormatAmount(amount decimal.Decimal) string {
	value, _ := amount.Round(2).Float64()
	return amountPrinter.Sprintf("%.2f", value)
}

// FormatAmountWhole renders a rounded amount without decimals,
// e.g. 12345.67 -> "12,346".
func FormatAmountWhole(amount decimal.Decimal) string {
	value, _ := amount.Round(0).Float64()
	return amountPrinter.Sprintf("%.0f", value)
}

// ParseAmount reads user input such as "12,345.00" back into a decimal.
// Empty input parses to zero.
func ParseAmount(input string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(input), ",", "")
	if cleaned == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(cleaned)
}
