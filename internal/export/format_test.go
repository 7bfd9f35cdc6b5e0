package export

import (
	"math"
	"testing"
)

func TestFormatMeasure(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{name: "trailing zeros trimmed", value: 2.5, want: "2.5"},
		{name: "whole number drops decimal point", value: 2, want: "2"},
		{name: "four decimals kept", value: 2.2506, want: "2.2506"},
		{name: "fifth decimal below midpoint rounds down", value: 2.25064, want: "2.2506"},
		{name: "fifth decimal at midpoint rounds away from zero", value: 2.25065, want: "2.2507"},
		{name: "carry across decimal point", value: 9.99995, want: "10"},
		{name: "zero renders as zero not blank", value: 0, want: "0"},
		{name: "dimensional weight example", value: 100.0 / 166.0, want: "0.6024"},
		{name: "negative renders blank", value: -1, want: ""},
		{name: "NaN renders blank", value: math.NaN(), want: ""},
		{name: "positive infinity renders blank", value: math.Inf(1), want: ""},
		{name: "negative infinity renders blank", value: math.Inf(-1), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatMeasure(tt.value); got != tt.want {
				t.Errorf("FormatMeasure(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
