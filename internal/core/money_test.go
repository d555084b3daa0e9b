package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1", true},
		{"1.0", "1", true},
		{"1.23", "1.23", true},
		{"1,23", "1.23", true},
		{"0.01", "0.01", true},
		{" 2.50 ", "2.5", true},
		{"1000", "1000", true},
		{"-1", "", false},
		{"+1", "", false},
		{"0", "", false},
		{"0.00", "", false},
		{"abc", "", false},
		{"1.2.3", "", false},
		{"1e3", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || !got.Equal(decimal.RequireFromString(tc.out)) {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	if got := FormatAmount("$", decimal.RequireFromString("12.5")); got != "$12.50" {
		t.Fatalf("unexpected %q", got)
	}
	if got := FormatAmount("€", decimal.NewFromInt(-3)); got != "-€3.00" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestSignedAmount(t *testing.T) {
	in := Transaction{Amount: decimal.NewFromInt(20), Type: Income}
	out := Transaction{Amount: decimal.NewFromInt(20), Type: Expense}
	if got := SignedAmount("$", in); got != "+ $20.00" {
		t.Fatalf("unexpected %q", got)
	}
	if got := SignedAmount("$", out); got != "- $20.00" {
		t.Fatalf("unexpected %q", got)
	}
}
