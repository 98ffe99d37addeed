package model

import (
	"errors"
	"testing"
)

func TestStandardTable(t *testing.T) {
	table := StandardTable()

	if len(table.Codons) != 64 {
		t.Fatalf("standard table has %d codons, want 64", len(table.Codons))
	}

	tests := map[string]byte{
		"ATG": 'M',
		"GCC": 'A',
		"TTT": 'F',
		"TGG": 'W',
		"TAA": StopSymbol,
		"TAG": StopSymbol,
		"TGA": StopSymbol,
		"AGA": 'R',
		"GGG": 'G',
	}
	for codon, want := range tests {
		got, ok := table.Translate(codon)
		if !ok || got != want {
			t.Errorf("Translate(%s) = %c, %v; want %c", codon, got, ok, want)
		}
	}
}

func TestCodeTableRegistry(t *testing.T) {
	reg := NewCodeTableRegistry()

	ids := []int{}
	for _, table := range reg.Tables() {
		ids = append(ids, table.ID)
	}
	if len(ids) != 3 || ids[0] != 1 || ids[1] != 2 || ids[2] != 11 {
		t.Errorf("unexpected built-in table ids %v", ids)
	}

	mito, err := reg.Lookup(2)
	if err != nil {
		t.Fatalf("Lookup(2): %v", err)
	}
	if aa, _ := mito.Translate("AGA"); aa != StopSymbol {
		t.Errorf("mitochondrial AGA = %c, want stop", aa)
	}

	if _, err := reg.Lookup(42); !errors.Is(err, ErrUnknownTable) {
		t.Errorf("Lookup(42) error = %v, want ErrUnknownTable", err)
	}

	custom := &CodeTable{ID: 42, Name: "custom", Codons: map[string]byte{"ATG": 'M'}}
	if err := reg.Register(custom); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if got, err := reg.Lookup(42); err != nil || got != custom {
		t.Errorf("Lookup(42) after Register = %v, %v", got, err)
	}

	if err := reg.Register(&CodeTable{ID: 5}); err == nil {
		t.Errorf("expected error registering an empty table")
	}
}
