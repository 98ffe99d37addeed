// Genetic code tables used by the translator

package model

import (
	"fmt"
	"sort"
	"sync"
)

const (
	StandardTableID = 1
	StopSymbol      = '*'

	// NCBI ordering of the bases in the compact table notation.
	ncbiBaseOrder = "TCAG"
)

// CodeTable maps every codon to a single-letter amino acid or StopSymbol.
type CodeTable struct {
	ID     int             `json:"id"`
	Name   string          `json:"name"`
	Codons map[string]byte `json:"-"`
}

// Translate resolves a single upper-case codon.
func (t *CodeTable) Translate(codon string) (byte, bool) {
	aa, ok := t.Codons[codon]
	return aa, ok
}

// Built-in tables in the NCBI compact form, one amino acid per codon ordered TTT, TTC, TTA, TTG, TCT, ...
var builtinTables = []struct {
	id   int
	name string
	aas  string
}{
	{1, "Standard", "FFLLSSSSYY**CC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG"},
	{2, "Vertebrate Mitochondrial", "FFLLSSSSYY**CCWWLLLLPPPPHHQQRRRRIIMMTTTTNNKKSS**VVVVAAAADDEEGGGG"},
	{11, "Bacterial, Archaeal and Plant Plastid", "FFLLSSSSYY**CC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG"},
}

func newCompactTable(id int, name string, aas string) *CodeTable {
	codons := make(map[string]byte, 64)
	i := 0
	for _, b1 := range []byte(ncbiBaseOrder) {
		for _, b2 := range []byte(ncbiBaseOrder) {
			for _, b3 := range []byte(ncbiBaseOrder) {
				codons[string([]byte{b1, b2, b3})] = aas[i]
				i++
			}
		}
	}
	return &CodeTable{ID: id, Name: name, Codons: codons}
}

var standardTable = newCompactTable(builtinTables[0].id, builtinTables[0].name, builtinTables[0].aas)

// StandardTable returns the standard genetic code (NCBI table 1).
func StandardTable() *CodeTable {
	return standardTable
}

// CodeTableRegistry holds the tables available to requests.
// It is filled at startup and only read afterwards.
type CodeTableRegistry struct {
	mu     sync.RWMutex
	tables map[int]*CodeTable
}

// NewCodeTableRegistry returns a registry holding the built-in tables.
func NewCodeTableRegistry() *CodeTableRegistry {
	reg := &CodeTableRegistry{tables: make(map[int]*CodeTable)}
	reg.tables[standardTable.ID] = standardTable
	for _, bt := range builtinTables[1:] {
		reg.tables[bt.id] = newCompactTable(bt.id, bt.name, bt.aas)
	}
	return reg
}

// Register adds or replaces a table.
func (reg *CodeTableRegistry) Register(table *CodeTable) error {
	if table == nil || len(table.Codons) == 0 {
		return fmt.Errorf("Register: table is empty")
	}
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.tables[table.ID] = table
	return nil
}

// Lookup finds a table by NCBI id.
func (reg *CodeTableRegistry) Lookup(id int) (*CodeTable, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	table, ok := reg.tables[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTable, id)
	}
	return table, nil
}

// Tables lists the registered tables ordered by id.
func (reg *CodeTableRegistry) Tables() []*CodeTable {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	ret := make([]*CodeTable, 0, len(reg.tables))
	for _, t := range reg.tables {
		ret = append(ret, t)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].ID < ret[j].ID })
	return ret
}
