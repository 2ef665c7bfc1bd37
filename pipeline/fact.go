// Package pipeline sequences loading, normalization and resolution over
// the incident fact table, producing the enriched output and a run
// summary.
package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/crimedata-tools/lapd-enrich/refdata"
)

var spaceRE = regexp.MustCompile(`\s+`)

func norm(s string) string {
	return spaceRE.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
}

// FactTable is the incident dataset held in memory: a header and rows in
// source order. Row position is the only identity the source guarantees,
// so rows are never reordered.
type FactTable struct {
	Header []string
	Rows   [][]string

	byName map[string]int
}

// NewFactTable wraps parsed tabular data. The header index is built once;
// appended columns extend it.
func NewFactTable(header []string, rows [][]string) *FactTable {
	t := &FactTable{Header: header, Rows: rows}
	t.reindex()
	return t
}

// ReadFactCSV loads the fact dataset. Ragged rows are tolerated; the
// source files occasionally drop trailing empty fields.
func ReadFactCSV(path string) (*FactTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fact table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	all, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read fact table: %w", err)
	}
	if len(all) == 0 {
		return nil, &refdata.SchemaError{Table: "fact", Reason: "empty source"}
	}
	return NewFactTable(all[0], all[1:]), nil
}

// Col returns the index of a named column, matching headers the same
// forgiving way reference loaders do. Returns -1 when absent.
func (t *FactTable) Col(name string) int {
	if i, ok := t.byName[norm(name)]; ok {
		return i
	}
	return -1
}

// Value reads a cell bounds-safely; ragged rows read as empty.
func (t *FactTable) Value(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// AppendColumn adds a resolved column on the right. Existing columns are
// never overwritten, so raw and resolved values can be audited side by
// side. vals must have one entry per row.
func (t *FactTable) AppendColumn(name string, vals []string) {
	width := len(t.Header)
	t.Header = append(t.Header, name)
	for i := range t.Rows {
		row := t.Rows[i]
		for len(row) < width {
			row = append(row, "")
		}
		t.Rows[i] = append(row, vals[i])
	}
	t.byName[norm(name)] = width
}

func (t *FactTable) reindex() {
	t.byName = make(map[string]int, len(t.Header))
	for i, h := range t.Header {
		t.byName[norm(h)] = i
	}
}
