package api

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"0.5", "0.50"},
		{"999.999", "1,000.00"},
		{"1234.5", "1,234.50"},
		{"65000.12", "65,000.12"},
		{"1234567.891", "1,234,567.89"},
		{"-98765.4", "-98,765.40"},
	}

	for _, tt := range tests {
		if got := FormatPrice(decimal.RequireFromString(tt.in)); got != tt.want {
			t.Errorf("FormatPrice(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatChange(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00%"},
		{"-2.5", "-2.50%"},
		{"12.345", "12.35%"},
	}

	for _, tt := range tests {
		if got := FormatChange(decimal.RequireFromString(tt.in)); got != tt.want {
			t.Errorf("FormatChange(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFallback(t *testing.T) {
	q := Fallback()
	if !q.IsFallback() || q.Symbol != "N/A" {
		t.Errorf("Fallback() = %+v", q)
	}
	if FormatPrice(q.Price) != "0.00" || FormatChange(q.Change24h) != "0.00%" {
		t.Errorf("fallback renders %s / %s", FormatPrice(q.Price), FormatChange(q.Change24h))
	}
	if !q.Rising() {
		t.Error("zero change should render as rising")
	}
}
