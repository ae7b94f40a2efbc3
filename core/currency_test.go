package core

import "testing"

func TestCurrencySymbol(t *testing.T) {
	tests := []struct {
		currency string
		want     string
	}{
		{CurrencyUSD, "$"},
		{CurrencyZWL, "Z$"},
		{"", "$"},
		{"EUR", "$"}, // unknown currencies fall back to the dollar sign
	}
	for _, tt := range tests {
		t.Run(tt.currency, func(t *testing.T) {
			if got := CurrencySymbol(tt.currency); got != tt.want {
				t.Errorf("CurrencySymbol() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		want     string
	}{
		{name: "plain", amount: "200", currency: CurrencyUSD, want: "$200"},
		{name: "thousands", amount: "1500000", currency: CurrencyZWL, want: "Z$1,500,000"},
		{name: "dash passthrough", amount: "-", currency: CurrencyUSD, want: "-"},
		{name: "non-numeric counts as zero", amount: "abc", currency: CurrencyUSD, want: "$0"},
		{name: "empty", amount: "", currency: CurrencyUSD, want: "$0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatAmount(tt.amount, tt.currency); got != tt.want {
				t.Errorf("FormatAmount() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNextID(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		n      int
		width  int
		want   string
	}{
		{name: "first student", prefix: "", n: 0, width: 3, want: "001"},
		{name: "tenth student", prefix: "", n: 9, width: 3, want: "010"},
		{name: "user", prefix: "U", n: 2, width: 3, want: "U003"},
		{name: "class", prefix: "C", n: 0, width: 3, want: "C001"},
		{name: "notification", prefix: "N", n: 49, width: 5, want: "N00050"},
		{name: "width overflow", prefix: "", n: 999, width: 3, want: "1000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextID(tt.prefix, tt.n, tt.width); got != tt.want {
				t.Errorf("NextID() = %v, want %v", got, tt.want)
			}
		})
	}
}
