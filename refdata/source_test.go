package refdata

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCSVSource(t *testing.T) {
	t.Run("Load", func(t *testing.T) {
		path := writeFile(t, "status.csv", "status_code,description\nIC,Invest Cont\nAA,Adult Arrest\n")
		src := CSVSource{TableName: "status codes", Path: path, CodeColumn: "status_code", DescColumns: []string{"description"}}
		tbl, err := src.Load()
		require.NoError(t, err)
		d, ok := tbl.Description("IC")
		assert.True(t, ok)
		assert.Equal(t, "Invest Cont", d)
	})

	t.Run("EmptyFileIsSchemaError", func(t *testing.T) {
		path := writeFile(t, "empty.csv", "")
		src := CSVSource{TableName: "status codes", Path: path, CodeColumn: "status_code", DescColumns: []string{"description"}}
		_, err := src.Load()
		var se *SchemaError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, "status codes", se.Table)
	})

	t.Run("MissingFile", func(t *testing.T) {
		src := CSVSource{TableName: "status codes", Path: "nope/missing.csv", CodeColumn: "status_code"}
		_, err := src.Load()
		assert.Error(t, err)
	})
}

func TestXLSXSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mocodes.xlsx")

	x := excelize.NewFile()
	sheet := x.GetSheetName(0)
	require.NoError(t, x.SetCellStr(sheet, "A1", "MO Code"))
	require.NoError(t, x.SetCellStr(sheet, "B1", "Description"))
	require.NoError(t, x.SetCellStr(sheet, "A2", "0344"))
	require.NoError(t, x.SetCellStr(sheet, "B2", "Removes vict property"))
	require.NoError(t, x.SaveAs(path))
	require.NoError(t, x.Close())

	src := XLSXSource{TableName: "mo codes", Path: path, CodeColumn: "MO Code", DescColumns: []string{"Description"}}
	tbl, err := src.Load()
	require.NoError(t, err)
	d, ok := tbl.Description("344")
	assert.True(t, ok)
	assert.Equal(t, "Removes vict property", d)
}

func TestSQLiteSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "districts.db")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE districts (REPDIST TEXT, BUREAU TEXT, S_TYPE TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO districts VALUES ('0416', 'OPERATIONS-CENTRAL BUREAU', 'LAPD')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	src := SQLiteSource{
		TableName:   "districts",
		Path:        path,
		Table:       "districts",
		CodeColumn:  "REPDIST",
		DescColumns: []string{"BUREAU", "S_TYPE"},
	}
	tbl, err := src.Load()
	require.NoError(t, err)

	bureau, err := tbl.Column("BUREAU")
	require.NoError(t, err)
	d, ok := bureau.Description("416")
	assert.True(t, ok)
	assert.Equal(t, "OPERATIONS-CENTRAL BUREAU", d)
}
