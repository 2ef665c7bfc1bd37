package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimedata-tools/lapd-enrich/refdata"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "Criminal Code", cfg.References.CrimeCodes.CodeColumn)
	assert.Equal(t, []string{"BUREAU", "S_TYPE"}, cfg.References.Districts.DescColumns)
	assert.Equal(t, 1, cfg.Workers)
	assert.True(t, cfg.Output.Workbook)
}

func TestLoad(t *testing.T) {
	t.Run("OverridesDefaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cfg.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
fact: other/facts.csv
workers: 4
references:
  districts:
    path: other/districts.db
    format: sqlite
    table: districts
    code_column: REPDIST
    desc_columns: [BUREAU, S_TYPE]
http:
  addr: ":9090"
`), 0644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "other/facts.csv", cfg.Fact)
		assert.Equal(t, 4, cfg.Workers)
		assert.Equal(t, ":9090", cfg.HTTP.Addr)
		// untouched sections keep their defaults
		assert.Equal(t, "data/criminal_codes.csv", cfg.References.CrimeCodes.Path)
	})

	t.Run("EmptyPathMeansDefaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("BadYAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cfg.yaml")
		require.NoError(t, os.WriteFile(path, []byte("fact: [unterminated"), 0644))
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestTableRefSource(t *testing.T) {
	t.Run("FormatInferredFromExtension", func(t *testing.T) {
		src, err := TableRef{Path: "x.csv", CodeColumn: "c"}.Source("crime codes")
		require.NoError(t, err)
		assert.IsType(t, refdata.CSVSource{}, src)

		src, err = TableRef{Path: "x.xlsx", CodeColumn: "c"}.Source("mo codes")
		require.NoError(t, err)
		assert.IsType(t, refdata.XLSXSource{}, src)

		src, err = TableRef{Path: "x.db", CodeColumn: "c"}.Source("districts")
		require.NoError(t, err)
		assert.IsType(t, refdata.SQLiteSource{}, src)
	})

	t.Run("SQLiteTableDefaultsToFileName", func(t *testing.T) {
		src, err := TableRef{Path: "ref/districts.db", CodeColumn: "REPDIST"}.Source("districts")
		require.NoError(t, err)
		assert.Equal(t, "districts", src.(refdata.SQLiteSource).Table)
	})

	t.Run("UnsupportedFormat", func(t *testing.T) {
		_, err := TableRef{Path: "x.parquet", CodeColumn: "c"}.Source("crime codes")
		assert.Error(t, err)
	})
}
