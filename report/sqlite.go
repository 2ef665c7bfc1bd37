package report

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/crimedata-tools/lapd-enrich/pipeline"
)

// SaveSQLite persists the enriched table into a SQLite file, one TEXT
// column per header plus the source row number, for consumers that want
// to query rather than scan.
func SaveSQLite(path string, tbl *pipeline.FactTable) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("save sqlite: %w", err)
	}
	defer db.Close()

	cols := make([]string, 0, len(tbl.Header)+1)
	cols = append(cols, `"row_no" INTEGER`)
	for _, h := range tbl.Header {
		cols = append(cols, quoteIdent(h)+" TEXT")
	}
	if _, err := db.Exec("DROP TABLE IF EXISTS enriched"); err != nil {
		return fmt.Errorf("save sqlite: %w", err)
	}
	if _, err := db.Exec("CREATE TABLE enriched (" + strings.Join(cols, ", ") + ")"); err != nil {
		return fmt.Errorf("save sqlite: %w", err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(tbl.Header)+1), ",")
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("save sqlite: %w", err)
	}
	stmt, err := tx.Prepare("INSERT INTO enriched VALUES (" + placeholders + ")")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("save sqlite: %w", err)
	}
	defer stmt.Close()

	width := len(tbl.Header)
	args := make([]any, width+1)
	for i, row := range tbl.Rows {
		args[0] = i
		for c := 0; c < width; c++ {
			args[c+1] = tbl.Value(row, c)
		}
		if _, err := stmt.Exec(args...); err != nil {
			tx.Rollback()
			return fmt.Errorf("save sqlite row %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save sqlite: %w", err)
	}
	return nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
