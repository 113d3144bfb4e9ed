package calculator

import (
	"math"
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"12.34", 12.34},
		{" 12.34 ", 12.34},
		{"12,5", 12.5},
		{"$40", 40},
		{"0", 0},
		{"", 0},
		{"abc", 0},
		{"12.3.4", 0},
		{"-5", 0},
		{"NaN", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseAmount(tt.in); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ParseAmount(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTotalWithTaxAndTip(t *testing.T) {
	tests := []struct {
		name           string
		bill, tax, tip float64
		want           float64
	}{
		{"bill only", 75, 0, 0, 75},
		{"tax and tip", 75, 6, 12, 90},
		{"negative tax ignored", 50, -10, 0, 50},
		{"zero bill keeps tax", 0, 5, 20, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TotalWithTaxAndTip(tt.bill, tt.tax, tt.tip)
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("TotalWithTaxAndTip(%v, %v, %v) = %v, want %v", tt.bill, tt.tax, tt.tip, got, tt.want)
			}
		})
	}
}

func TestBillInput(t *testing.T) {
	in := BillInput{Bill: "75", Tax: "6", TipPercent: "12"}
	if !in.Valid() {
		t.Error("expected valid input")
	}
	if math.Abs(in.Total()-90) > 0.01 {
		t.Errorf("Total() = %v, want 90", in.Total())
	}

	bad := BillInput{Bill: "seventy", Tax: "6"}
	if bad.Valid() {
		t.Error("expected invalid input")
	}
	if math.Abs(bad.Total()-6) > 0.01 {
		t.Errorf("Total() = %v, want 6", bad.Total())
	}

	if (BillInput{}).Valid() {
		t.Error("blank bill should be invalid")
	}
}
