package parser

import (
	"reflect"
	"testing"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"unix", "a\nb", []string{"a", "b"}},
		{"windows", "a\r\nb\r\n", []string{"a", "b"}},
		{"trims and drops blanks", "  a  \n\n\t\n b", []string{"a", "b"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLines(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("SplitLines(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDigitsOnly(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"150", "150"},
		{"150km", "150"},
		{"(1,200)", "1200"},
		{"km", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := digitsOnly(tt.input); got != tt.expected {
				t.Errorf("digitsOnly(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseDistance(t *testing.T) {
	tests := []struct {
		input  string
		want   int
		wantOK bool
	}{
		{"150", 150, true},
		{"007", 7, true},
		{"", 0, false},
		{"99999999999999999999999", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseDistance(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("parseDistance(%q) = (%d, %v), want (%d, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
