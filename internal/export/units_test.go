package export

import (
	"math"
	"testing"
)

const floatTolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

func TestConvertLength(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		from  string
		to    string
		want  float64
	}{
		{name: "inches to centimeters", value: 10, from: "in", to: "cm", want: 25.4},
		{name: "centimeters to inches", value: 25.4, from: "cm", to: "in", want: 10},
		{name: "same unit is identity", value: 12.5, from: "in", to: "in", want: 12.5},
		{name: "same unrecognized unit is identity", value: 7, from: "furlong", to: "furlong", want: 7},
		{name: "unit comparison ignores case", value: 3, from: "IN", to: "In", want: 3},
		{name: "zero yields zero", value: 0, from: "in", to: "cm", want: 0},
		{name: "negative yields zero", value: -5, from: "in", to: "cm", want: 0},
		{name: "unrecognized source treated as inches", value: 10, from: "bogus", to: "cm", want: 25.4},
		{name: "unrecognized target treated as inches", value: 25.4, from: "cm", to: "bogus", want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConvertLength(tt.value, tt.from, tt.to)
			if !almostEqual(got, tt.want) {
				t.Errorf("ConvertLength(%v, %q, %q) = %v, want %v", tt.value, tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestConvertWeight(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		from  string
		to    string
		want  float64
	}{
		{name: "pounds to kilograms", value: 10, from: "lb", to: "kg", want: 4.5359237},
		{name: "kilograms to pounds", value: 4.5359237, from: "kg", to: "lb", want: 10},
		{name: "same unit is identity", value: 2.2, from: "lb", to: "lb", want: 2.2},
		{name: "zero yields zero", value: 0, from: "lb", to: "kg", want: 0},
		{name: "negative yields zero", value: -1, from: "kg", to: "lb", want: 0},
		{name: "unrecognized token treated as pounds", value: 10, from: "stone", to: "kg", want: 4.5359237},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConvertWeight(tt.value, tt.from, tt.to)
			if !almostEqual(got, tt.want) {
				t.Errorf("ConvertWeight(%v, %q, %q) = %v, want %v", tt.value, tt.from, tt.to, got, tt.want)
			}
		})
	}
}
