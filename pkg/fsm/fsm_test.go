package fsm

import "testing"

func TestIsIdentifier(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"a", true},
		{"abc123", true},
		{"x_1", true},
		{"1abc", false},
		{"", false},
	}
	for _, tc := range tests {
		if got := IsIdentifier(tc.input); got != tc.want {
			t.Errorf("IsIdentifier(%q) = %v; want %v", tc.input, got, tc.want)
		}
	}
}

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		input  string
		want   int
		wantOk bool
	}{
		{"0", 0, true},
		{"123", 123, true},
		{"+7", 7, true},
		{"-42", -42, true},
		{"-", 0, false},
		{"", 0, false},
		{"12a", 0, false},
		{"--1", 0, false},
	}
	for _, tc := range tests {
		got, ok := ParseDecimal(tc.input)
		if got != tc.want || ok != tc.wantOk {
			t.Errorf("ParseDecimal(%q) = %d, %v; want %d, %v", tc.input, got, ok, tc.want, tc.wantOk)
		}
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		input  string
		want   int
		wantOk bool
	}{
		{"0x0", 0, true},
		{"0XfF", 255, true},
		{"0x10000", 0x10000, true},
		{"0x", 0, false},
		{"x10", 0, false},
		{"0x1g", 0, false},
		{"10", 0, false},
	}
	for _, tc := range tests {
		got, ok := ParseHex(tc.input)
		if got != tc.want || ok != tc.wantOk {
			t.Errorf("ParseHex(%q) = %d, %v; want %d, %v", tc.input, got, ok, tc.want, tc.wantOk)
		}
	}
}
