package model

import (
	"errors"
	"fmt"
)

// Defining possible error
var (
	ErrEmptySequence = errors.New("No valid DNA sequence provided after cleaning input.")
	ErrEmptyInput    = errors.New("Sequence cannot be empty")
	ErrUnknownTable  = errors.New("Unknown genetic code table")
)

// TranslationError is returned when a codon cannot be resolved by the code table.
type TranslationError struct {
	Codon    string
	Position int // offset of the codon in the trimmed sequence
	TableID  int
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("codon '%s' at position %d is not defined in table %d", e.Codon, e.Position, e.TableID)
}
