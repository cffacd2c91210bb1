package paytr

import (
	"strconv"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ToMinorUnits converts a major-unit amount to integer minor units, rounding half away from zero.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

// FromMinorUnits is the inverse of ToMinorUnits.
func FromMinorUnits(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}

// RoundToMinor rounds an amount to whole minor units with the same rule as ToMinorUnits.
func RoundToMinor(amount decimal.Decimal) decimal.Decimal {
	return FromMinorUnits(ToMinorUnits(amount))
}

// ParseMinorUnits parses the integer amount strings the gateway posts back.
func ParseMinorUnits(s string) (decimal.Decimal, error) {
	minor, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return decimal.Zero, err
	}

	return FromMinorUnits(minor), nil
}

func formatMinor(amount decimal.Decimal) string {
	return strconv.FormatInt(ToMinorUnits(amount), 10)
}
