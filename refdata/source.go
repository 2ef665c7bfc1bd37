package refdata

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/xuri/excelize/v2"
)

// Source is a loadable reference-table location. Load opens the source,
// reads it fully and closes it; handles are released even on failure.
type Source interface {
	Name() string
	Load() (*Table, error)
}

// CSVSource reads a reference table from a CSV file with a header row.
type CSVSource struct {
	TableName   string
	Path        string
	CodeColumn  string
	DescColumns []string
}

func (s CSVSource) Name() string { return s.TableName }

func (s CSVSource) Load() (*Table, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.TableName, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.TableName, err)
	}
	if len(rows) == 0 {
		return nil, &SchemaError{Table: s.TableName, Reason: "empty source"}
	}
	return FromRows(s.TableName, rows[0], rows[1:], s.CodeColumn, s.DescColumns...)
}

// XLSXSource reads a reference table from a worksheet. An empty Sheet
// means the first sheet in the workbook.
type XLSXSource struct {
	TableName   string
	Path        string
	Sheet       string
	CodeColumn  string
	DescColumns []string
}

func (s XLSXSource) Name() string { return s.TableName }

func (s XLSXSource) Load() (*Table, error) {
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.TableName, err)
	}
	defer f.Close()

	sheet := s.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.TableName, err)
	}
	if len(rows) == 0 {
		return nil, &SchemaError{Table: s.TableName, Reason: "empty source"}
	}
	return FromRows(s.TableName, rows[0], rows[1:], s.CodeColumn, s.DescColumns...)
}

// SQLiteSource reads a reference table from a SQLite database opened
// read-only, in the shape the district lookups ship in.
type SQLiteSource struct {
	TableName   string
	Path        string
	Table       string // SQL table name
	CodeColumn  string
	DescColumns []string
}

func (s SQLiteSource) Name() string { return s.TableName }

func (s SQLiteSource) Load() (*Table, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", s.Path))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.TableName, err)
	}
	defer db.Close()

	cols := append([]string{s.CodeColumn}, s.DescColumns...)
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quoteIdent(c)
	}
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(quoted, ", "), quoteIdent(s.Table))

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.TableName, err)
	}
	defer rows.Close()

	var data [][]string
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("load %s: %w", s.TableName, err)
		}
		rec := make([]string, len(cols))
		for i, v := range vals {
			rec[i] = sqlString(v)
		}
		data = append(data, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load %s: %w", s.TableName, err)
	}
	if len(data) == 0 {
		return nil, &SchemaError{Table: s.TableName, Reason: "empty source"}
	}
	return FromRows(s.TableName, cols, data, s.CodeColumn, s.DescColumns...)
}

// Static wraps an already-built Table as a Source, for tests and for the
// hard-coded descent map.
func Static(t *Table) Source { return staticSource{t} }

type staticSource struct{ t *Table }

func (s staticSource) Name() string          { return s.t.Name() }
func (s staticSource) Load() (*Table, error) { return s.t, nil }

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func sqlString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(x)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
