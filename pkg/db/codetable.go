package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/yumyai/seqtool/internal/util"
	"github.com/yumyai/seqtool/pkg/model"
)

var ErrNoCodeTables = errors.New("Code table database has no tables")

// Extra genetic code tables kept in a sqlite file.
// The file is read at startup only.
type CodeTableStore struct {
	db *sql.DB
}

func NewCodeTableStore(db *sql.DB) *CodeTableStore {
	return &CodeTableStore{db: db}
}

// OpenCodeTableStore opens an existing sqlite file. The caller must import a
// driver registered as "sqlite".
func OpenCodeTableStore(path string) (*CodeTableStore, error) {
	if !util.FileExists(path) {
		return nil, fmt.Errorf("%w: %s", os.ErrNotExist, path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	return &CodeTableStore{db: db}, nil
}

func (store *CodeTableStore) Close() error {
	return store.db.Close()
}

const codeTableSchema = `
create table if not exists code_table (
	table_id integer primary key,
	name     text not null
);
create table if not exists code_table_codon (
	table_id   integer not null references code_table(table_id),
	codon      text    not null,
	amino_acid text    not null,
	primary key (table_id, codon)
);`

func (store *CodeTableStore) InitSchema(ctx context.Context) error {
	if _, err := store.db.ExecContext(ctx, codeTableSchema); err != nil {
		return fmt.Errorf("InitSchema: %w", err)
	}
	return nil
}

// InsertCodeTable writes a table and all of its codons in one transaction.
func (store *CodeTableStore) InsertCodeTable(ctx context.Context, table *model.CodeTable) error {
	tx, err := store.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `insert into code_table (table_id, name) values (?, ?)`, table.ID, table.Name); err != nil {
		return fmt.Errorf("InsertCodeTable: table %d: %w", table.ID, err)
	}

	stm, err := tx.PrepareContext(ctx, `insert into code_table_codon (table_id, codon, amino_acid) values (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stm.Close()

	for codon, aa := range table.Codons {
		if _, err := stm.ExecContext(ctx, table.ID, codon, string(aa)); err != nil {
			return fmt.Errorf("InsertCodeTable: codon %s: %w", codon, err)
		}
	}

	return tx.Commit()
}

// LoadCodeTables reads every table in the database.
// Tables may be partial; translation reports codons they do not cover.
func (store *CodeTableStore) LoadCodeTables(ctx context.Context) ([]*model.CodeTable, error) {

	rows, err := store.db.QueryContext(ctx, `select table_id, name from code_table order by table_id`)
	if err != nil {
		return nil, fmt.Errorf("LoadCodeTables: query failed: %w", err)
	}

	byID := make(map[int]*model.CodeTable)
	var tables []*model.CodeTable

	for rows.Next() {
		t := &model.CodeTable{Codons: make(map[string]byte)}
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("LoadCodeTables: scan failed: %w", err)
		}
		byID[t.ID] = t
		tables = append(tables, t)
	}
	rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("LoadCodeTables: %w", err)
	}
	if len(tables) == 0 {
		return nil, ErrNoCodeTables
	}

	codonRows, err := store.db.QueryContext(ctx, `select table_id, codon, amino_acid from code_table_codon`)
	if err != nil {
		return nil, fmt.Errorf("LoadCodeTables: codon query failed: %w", err)
	}
	defer codonRows.Close()

	for codonRows.Next() {
		var id int
		var codon, aa string
		if err := codonRows.Scan(&id, &codon, &aa); err != nil {
			return nil, fmt.Errorf("LoadCodeTables: scan failed: %w", err)
		}

		t, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("LoadCodeTables: codon %s refers to unknown table %d", codon, id)
		}
		if !validCodon(codon) {
			return nil, fmt.Errorf("LoadCodeTables: table %d: invalid codon %q", id, codon)
		}
		if len(aa) != 1 {
			return nil, fmt.Errorf("LoadCodeTables: table %d: invalid amino acid %q for %s", id, aa, codon)
		}
		t.Codons[codon] = aa[0]
	}

	if err := codonRows.Err(); err != nil {
		return nil, fmt.Errorf("LoadCodeTables: %w", err)
	}

	return tables, nil
}

func validCodon(codon string) bool {
	if len(codon) != 3 {
		return false
	}
	for i := 0; i < len(codon); i++ {
		switch codon[i] {
		case 'A', 'T', 'G', 'C':
		default:
			return false
		}
	}
	return true
}
