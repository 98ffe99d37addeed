// Model for cleaning, trimming and translating DNA sequences

package model

import (
	"fmt"
	"strings"
)

const codonLength = 3

// Keep only the nucleotides A, T, G and C after upper-casing.
func CleanSequence(raw string) string {
	var sb strings.Builder
	sb.Grow(len(raw))

	for _, r := range strings.ToUpper(raw) {
		switch r {
		case 'A', 'T', 'G', 'C':
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// TrimToCodons drops the trailing characters that do not form a full codon.
// Length is counted in characters, not bytes.
func TrimToCodons(seq string) string {
	runes := []rune(seq)
	return string(runes[:len(runes)-len(runes)%codonLength])
}

// TranslationResult holds the intermediate sequences of a translation.
type TranslationResult struct {
	Original string
	Cleaned  string
	Trimmed  string
	Protein  string
	Warning  string
	TableID  int
}

// Translate cleans, trims and translates the raw sequence using table.
// A nil table means the standard code.
func Translate(raw string, table *CodeTable) (*TranslationResult, error) {
	if table == nil {
		table = StandardTable()
	}

	cleaned := CleanSequence(raw)
	if cleaned == "" {
		return nil, ErrEmptySequence
	}

	// Cleaned sequence is ASCII only, byte offsets are safe from here on.
	trimmed := TrimToCodons(cleaned)

	protein := make([]byte, 0, len(trimmed)/codonLength)
	for i := 0; i < len(trimmed); i += codonLength {
		codon := trimmed[i : i+codonLength]
		aa, ok := table.Translate(codon)
		if !ok {
			return nil, &TranslationError{Codon: codon, Position: i, TableID: table.ID}
		}
		protein = append(protein, aa)
	}

	result := &TranslationResult{
		Original: raw,
		Cleaned:  cleaned,
		Trimmed:  trimmed,
		Protein:  string(protein),
		TableID:  table.ID,
	}

	if dropped := len(cleaned) - len(trimmed); dropped > 0 {
		result.Warning = fmt.Sprintf("Sequence length %d is not a multiple of three; trimmed %d trailing nucleotide(s).", len(cleaned), dropped)
	}

	return result, nil
}
