package export

import "strings"

// Conversion constants. Captures arrive normalized to inches and pounds, so
// both conversions pivot through those base units.
const (
	cmPerInch  = 2.54
	kgPerPound = 0.45359237
)

// ConvertLength converts a length value between inches and centimeters.
// Non-positive input yields 0 so that zero/negative placeholders never
// propagate through conversion. Unit tokens are matched case-insensitively;
// any token other than "cm" is treated as inches.
func ConvertLength(value float64, fromUnit, toUnit string) float64 {
	if value <= 0 {
		return 0
	}

	from := normalizeUnit(fromUnit)
	to := normalizeUnit(toUnit)
	if from == to {
		return value
	}

	inches := value
	if from == "cm" {
		inches = value / cmPerInch
	}
	if to == "cm" {
		return inches * cmPerInch
	}
	return inches
}

// ConvertWeight converts a weight value between pounds and kilograms.
// Same contract as ConvertLength: non-positive input yields 0, and any
// token other than "kg" is treated as pounds.
func ConvertWeight(value float64, fromUnit, toUnit string) float64 {
	if value <= 0 {
		return 0
	}

	from := normalizeUnit(fromUnit)
	to := normalizeUnit(toUnit)
	if from == to {
		return value
	}

	pounds := value
	if from == "kg" {
		pounds = value / kgPerPound
	}
	if to == "kg" {
		return pounds * kgPerPound
	}
	return pounds
}

// normalizeUnit lowercases and trims a unit token for comparison.
func normalizeUnit(unit string) string {
	return strings.ToLower(strings.TrimSpace(unit))
}
