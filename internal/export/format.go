package export

import (
	"math"
	"strconv"
	"strings"
)

// FormatMeasure canonicalizes a measurement value into the feed's numeric
// text form. Negative, NaN, and infinite values denote "unmeasured" and
// render blank rather than zero or an error marker. Everything else is
// rounded to 4 decimal places, half away from zero (2.25065 -> 2.2507), and
// printed with trailing zeros and a trailing decimal point trimmed, always
// with a '.' separator regardless of locale.
func FormatMeasure(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return ""
	}
	if value == 0 {
		return "0"
	}

	// Round on the decimal form rather than by scaling: the shortest decimal
	// representation is the value as entered, while scaling turns 2.25065
	// into 22506.4999... and rounds the wrong way.
	s := strconv.FormatFloat(value, 'f', -1, 64)
	intPart, fracPart, _ := strings.Cut(s, ".")

	if len(fracPart) > 4 {
		roundUp := fracPart[4] >= '5'
		fracPart = fracPart[:4]
		if roundUp {
			intPart, fracPart = incrementDecimal(intPart, fracPart)
		}
	}

	fracPart = strings.TrimRight(fracPart, "0")
	if fracPart == "" {
		return intPart
	}
	return intPart + "." + fracPart
}

// incrementDecimal adds one unit in the last place of intPart.fracPart,
// carrying across the decimal point (9.9999 -> 10.0000).
func incrementDecimal(intPart, fracPart string) (string, string) {
	digits := []byte(intPart + fracPart)

	i := len(digits) - 1
	for ; i >= 0; i-- {
		if digits[i] != '9' {
			digits[i]++
			break
		}
		digits[i] = '0'
	}
	if i < 0 {
		digits = append([]byte{'1'}, digits...)
	}

	split := len(digits) - len(fracPart)
	return string(digits[:split]), string(digits[split:])
}
