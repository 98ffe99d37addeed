// Model for base composition: GC content, GC trace and codon usage

package model

import (
	"fmt"
	"unicode/utf8"
)

func isGC(r rune) bool {
	switch r {
	case 'G', 'C', 'g', 'c':
		return true
	}
	return false
}

// GCContent returns the percentage of G and C over the whole raw sequence.
// Characters outside ATGC still count toward the length.
func GCContent(raw string) (float64, error) {
	total := utf8.RuneCountInString(raw)
	if total == 0 {
		return 0, ErrEmptyInput
	}

	gc := 0
	for _, r := range raw {
		if isGC(r) {
			gc++
		}
	}
	return float64(gc) / float64(total) * 100, nil
}

func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.2f%%", pct)
}

// GCTrace returns the GC fraction of every prefix of raw, lengths 1..N.
// Only upper-case G and C are counted.
func GCTrace(raw string) ([]float64, error) {
	if raw == "" {
		return nil, ErrEmptyInput
	}

	trace := make([]float64, 0, utf8.RuneCountInString(raw))
	gc := 0
	for _, r := range raw {
		if r == 'G' || r == 'C' {
			gc++
		}
		trace = append(trace, float64(gc)/float64(len(trace)+1))
	}
	return trace, nil
}

// CodonUsage counts non-overlapping codons of the raw sequence from offset 0.
// No cleaning or case folding is applied; a trailing partial codon is ignored.
func CodonUsage(raw string) map[string]int {
	counts := make(map[string]int)

	runes := []rune(raw)
	end := len(runes) - len(runes)%codonLength
	for i := 0; i < end; i += codonLength {
		counts[string(runes[i:i+codonLength])]++
	}
	return counts
}
