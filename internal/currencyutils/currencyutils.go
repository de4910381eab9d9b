// Package currencyutils normalizes and formats monetary amounts.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// spaces, including the non-breaking ones used as thousands separators
	spaceChars = regexp.MustCompile(`[\s\x{00A0}\x{202F}]`)
	// currency marks found in exported amounts
	currencyMarks = regexp.MustCompile(`[€$£¥₽₣₤₹₺₩₸₴]|RUB|EUR|USD|CHF|руб\.?`)
)

// Hundred is used for percentage and per-hundred arithmetic.
var Hundred = decimal.NewFromInt(100)

// StandardizeAmount rewrites a locale-formatted amount into the form
// decimal.NewFromString accepts: "-1 234,56" becomes "-1234.56".
func StandardizeAmount(amountStr string) string {
	amountStr = currencyMarks.ReplaceAllString(amountStr, "")
	amountStr = spaceChars.ReplaceAllString(amountStr, "")
	amountStr = strings.ReplaceAll(amountStr, "'", "")

	if strings.Contains(amountStr, ",") && strings.Contains(amountStr, ".") {
		if strings.LastIndex(amountStr, ".") < strings.LastIndex(amountStr, ",") {
			// 1.234,56
			amountStr = strings.ReplaceAll(amountStr, ".", "")
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// 1,234.56
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	} else {
		amountStr = strings.ReplaceAll(amountStr, ",", ".")
	}

	return amountStr
}

// ParseAmount parses a signed amount with either decimal separator.
// Unlike a zero-default parser, an empty cell is an error so that callers
// can tell a missing amount from a zero one.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	standardized := StandardizeAmount(amountStr)
	if standardized == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// Round2 rounds half away from zero to two decimal places.
func Round2(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// PerHundred returns amount / 100 rounded to two places, the "one unit of
// reward per hundred spent" rule.
func PerHundred(amount decimal.Decimal) decimal.Decimal {
	return Round2(amount.Div(Hundred))
}
