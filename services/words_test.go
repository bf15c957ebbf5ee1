package services

import "testing"

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		name   string
		input  float64
		expect string
	}{
		{"zero", 0, "Rupees Zero Only"},
		{"negative", -500, "Rupees Zero Only"},
		{"one", 1, "Rupees One Only"},
		{"teens", 14, "Rupees Fourteen Only"},
		{"round tens", 90, "Rupees Ninety Only"},
		{"compound tens", 42, "Rupees Forty Two Only"},
		{"one hundred", 100, "Rupees One Hundred Only"},
		{"hundred and remainder", 678, "Rupees Six Hundred and Seventy Eight Only"},
		{"thousands", 1000, "Rupees One Thousand Only"},
		{"two digit thousands", 42000, "Rupees Forty Two Thousand Only"},
		{"lakh and thousand", 150000, "Rupees One Lakh Fifty Thousand Only"},
		{"exact lakh", 100000, "Rupees One Lakh Only"},
		{"crore mix", 12345678, "Rupees One Crore Twenty Three Lakh Forty Five Thousand Six Hundred and Seventy Eight Only"},
		{"exact crore", 10000000, "Rupees One Crore Only"},
		{"hundred crore recursion", 1230000000, "Rupees One Hundred and Twenty Three Crore Only"},
		{"paise floored", 1121000.75, "Rupees Eleven Lakh Twenty One Thousand Only"},
		{"sub rupee fraction", 0.99, "Rupees Zero Only"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AmountInWords(tt.input)
			if got != tt.expect {
				t.Errorf("AmountInWords(%v) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestTwoDigitWords(t *testing.T) {
	tests := []struct {
		input  int64
		expect string
	}{
		{1, "One"},
		{19, "Nineteen"},
		{20, "Twenty"},
		{21, "Twenty One"},
		{55, "Fifty Five"},
		{99, "Ninety Nine"},
	}

	for _, tt := range tests {
		if got := twoDigitWords(tt.input); got != tt.expect {
			t.Errorf("twoDigitWords(%d) = %q, want %q", tt.input, got, tt.expect)
		}
	}
}
