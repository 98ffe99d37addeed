package model

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestGCContent(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"GCGC", "100.00%"},
		{"ATAT", "0.00%"},
		{"ATGC", "50.00%"},
		{"atgc", "50.00%"},
		{"GCN", "66.67%"},
		{"G C", "66.67%"},
		{"GéC", "66.67%"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			pct, err := GCContent(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := FormatPercent(pct); got != tt.expected {
				t.Errorf("GCContent(%q) = %s, want %s", tt.input, got, tt.expected)
			}
		})
	}
}

func TestGCContentEmpty(t *testing.T) {
	if _, err := GCContent(""); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestCodonUsage(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected map[string]int
	}{
		{name: "Repeat", input: "ATGATG", expected: map[string]int{"ATG": 2}},
		{name: "Distinct", input: "ATGATC", expected: map[string]int{"ATG": 1, "ATC": 1}},
		{name: "Remainder", input: "ATGATCA", expected: map[string]int{"ATG": 1, "ATC": 1}},
		{name: "NoCleaning", input: "atgN-xATG", expected: map[string]int{"atg": 1, "N-x": 1, "ATG": 1}},
		{name: "Short", input: "AT", expected: map[string]int{}},
		{name: "Empty", input: "", expected: map[string]int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CodonUsage(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("CodonUsage(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestGCTrace(t *testing.T) {
	trace, err := GCTrace("GCAT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []float64{1.0, 1.0, 2.0 / 3.0, 0.5}
	if len(trace) != len(expected) {
		t.Fatalf("trace length = %d, want %d", len(trace), len(expected))
	}
	for i := range expected {
		if math.Abs(trace[i]-expected[i]) > 1e-9 {
			t.Errorf("trace[%d] = %f, want %f", i, trace[i], expected[i])
		}
	}
}

// Running tally must agree with counting every prefix from scratch.
func TestGCTraceMatchesPrefixCount(t *testing.T) {
	seq := "ggATCCnnGCgcTTAéCG"

	trace, err := GCTrace(seq)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	runes := []rune(seq)
	for i := 1; i <= len(runes); i++ {
		gc := 0
		for _, r := range runes[:i] {
			if r == 'G' || r == 'C' {
				gc++
			}
		}
		want := float64(gc) / float64(i)
		if trace[i-1] != want {
			t.Errorf("prefix %d: got %f, want %f", i, trace[i-1], want)
		}
	}
}

func TestGCTraceLowerCase(t *testing.T) {
	trace, err := GCTrace("gcat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []float64{0, 0, 0, 0}
	if !reflect.DeepEqual(trace, expected) {
		t.Errorf("GCTrace(gcat) = %v, want %v", trace, expected)
	}

	// GC content of the same input stays case-insensitive
	pct, err := GCContent("gcat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if FormatPercent(pct) != "50.00%" {
		t.Errorf("GCContent(gcat) = %s, want 50.00%%", FormatPercent(pct))
	}
}

func TestGCTraceEmpty(t *testing.T) {
	if _, err := GCTrace(""); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}
