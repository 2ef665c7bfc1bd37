// Package refdata loads the reference (lookup) tables: small tabular
// sources mapping a code column to one or more description columns.
// Tables are built once at pipeline start and read-only after, so no
// locking is needed.
package refdata

import (
	"regexp"
	"strings"

	"github.com/crimedata-tools/lapd-enrich/codes"
	"github.com/crimedata-tools/lapd-enrich/logging"
)

var spaceRE = regexp.MustCompile(`\s+`)

// norm trims, lowercases and collapses whitespace for header matching.
// Codes are NOT normalized with this; see codes.Normalize.
func norm(s string) string {
	return spaceRE.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
}

func colIdx(header []string, key string) int {
	key = norm(key)
	for i, h := range header {
		if norm(h) == key {
			return i
		}
	}
	return -1
}

// Table is an immutable mapping from normalized code to one value per
// description column. Descriptions are kept verbatim; only the code key
// is normalized.
type Table struct {
	name    string
	columns []string
	rows    map[codes.Code][]string
	skipped int
}

// Name returns the table's name, used in error and log messages.
func (t *Table) Name() string { return t.name }

// Len reports the number of distinct normalized codes.
func (t *Table) Len() int { return len(t.rows) }

// Skipped reports how many source rows were dropped for a blank code.
func (t *Table) Skipped() int { return t.skipped }

// Columns returns the description column names in source order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Description implements codes.Lookup against the first description
// column. A code whose row carries no value for the column (ragged or
// blank source cell) is a miss, not a hit with empty text.
func (t *Table) Description(c codes.Code) (string, bool) {
	vals, ok := t.rows[c]
	if !ok || len(vals) == 0 || vals[0] == "" {
		return "", false
	}
	return vals[0], true
}

// Column returns a codes.Lookup view over one description column, for
// tables that carry several (the district table maps REPDIST to both a
// bureau and a unit type).
func (t *Table) Column(name string) (codes.Lookup, error) {
	for i, col := range t.columns {
		if norm(col) == norm(name) {
			return columnView{t: t, idx: i}, nil
		}
	}
	return nil, &SchemaError{Table: t.name, Column: name, Reason: "no such description column"}
}

type columnView struct {
	t   *Table
	idx int
}

func (v columnView) Description(c codes.Code) (string, bool) {
	vals, ok := v.t.rows[c]
	if !ok || v.idx >= len(vals) || vals[v.idx] == "" {
		return "", false
	}
	return vals[v.idx], true
}

// FromRows builds a Table from an already-parsed tabular source. Header
// matching is whitespace- and case-insensitive. Rows with a blank code
// are skipped (counted, logged, never fatal). Duplicate codes resolve
// last-write-wins in input row order, so reloading the same source always
// yields the same table.
func FromRows(name string, header []string, rows [][]string, codeCol string, descCols ...string) (*Table, error) {
	ci := colIdx(header, codeCol)
	if ci < 0 {
		return nil, &SchemaError{Table: name, Column: codeCol, Reason: "code column not found"}
	}
	di := make([]int, len(descCols))
	for i, dc := range descCols {
		di[i] = colIdx(header, dc)
		if di[i] < 0 {
			return nil, &SchemaError{Table: name, Column: dc, Reason: "description column not found"}
		}
	}

	t := &Table{
		name:    name,
		columns: append([]string(nil), descCols...),
		rows:    make(map[codes.Code][]string, len(rows)),
	}
	for _, rec := range rows {
		if ci >= len(rec) {
			t.skipped++
			continue
		}
		code := codes.Normalize(rec[ci])
		if code == codes.EmptyCode {
			t.skipped++
			continue
		}
		vals := make([]string, len(di))
		for i, d := range di {
			if d < len(rec) {
				vals[i] = rec[d]
			}
		}
		t.rows[code] = vals
	}
	if len(t.rows) == 0 {
		return nil, &SchemaError{Table: name, Column: codeCol, Reason: "no resolvable codes"}
	}
	if t.skipped > 0 {
		logging.New("refdata").Warn("skipped rows with blank or short codes",
			"table", name, "skipped", t.skipped, "loaded", len(t.rows))
	}
	return t, nil
}

// FromMap builds a single-column Table from a static Go map, for
// hard-coded lookups like the victim-descent letters. Keys are
// normalized like any other code.
func FromMap(name string, m map[string]string) *Table {
	t := &Table{
		name:    name,
		columns: []string{"description"},
		rows:    make(map[codes.Code][]string, len(m)),
	}
	for k, v := range m {
		if code := codes.Normalize(k); code != codes.EmptyCode {
			t.rows[code] = []string{v}
		}
	}
	return t
}
