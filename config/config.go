// Package config reads the YAML run configuration: where the fact table
// and reference files live, how to interpret each reference source, and
// runtime knobs for the CLI and server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/crimedata-tools/lapd-enrich/refdata"
)

// Config is the full run configuration. Zero values fall back to the
// conventions of the source dataset (see Default).
type Config struct {
	Fact       string     `yaml:"fact"`
	References References `yaml:"references"`
	Output     Output     `yaml:"output"`
	Workers    int        `yaml:"workers"`
	HTTP       HTTP       `yaml:"http"`
	Log        Log        `yaml:"log"`
}

// References names the four reference sources, one per code family.
type References struct {
	CrimeCodes  TableRef `yaml:"crime_codes"`
	Districts   TableRef `yaml:"districts"`
	StatusCodes TableRef `yaml:"status_codes"`
	MOCodes     TableRef `yaml:"mo_codes"`
}

// TableRef locates one reference table. Format is csv, xlsx or sqlite;
// when empty it is inferred from the file extension.
type TableRef struct {
	Path        string   `yaml:"path"`
	Format      string   `yaml:"format"`
	Sheet       string   `yaml:"sheet"`        // xlsx only
	Table       string   `yaml:"table"`        // sqlite only
	CodeColumn  string   `yaml:"code_column"`
	DescColumns []string `yaml:"desc_columns"`
}

// Output controls which artifacts a run writes.
type Output struct {
	Dir      string `yaml:"dir"`
	Workbook bool   `yaml:"workbook"`
	CSV      bool   `yaml:"csv"`
	SQLite   bool   `yaml:"sqlite"`
}

// HTTP holds the server address for serve mode.
type HTTP struct {
	Addr string `yaml:"addr"`
}

// Log holds logging knobs.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the conventional configuration for the source dataset:
// file names as published, the documented code/description columns.
func Default() Config {
	return Config{
		Fact: "data/Crime_Data_from_2020_to_Present.csv",
		References: References{
			CrimeCodes: TableRef{
				Path:        "data/criminal_codes.csv",
				CodeColumn:  "Criminal Code",
				DescColumns: []string{"Class"},
			},
			Districts: TableRef{
				Path:        "data/LAPD_Reporting_District.csv",
				CodeColumn:  "REPDIST",
				DescColumns: []string{"BUREAU", "S_TYPE"},
			},
			StatusCodes: TableRef{
				Path:        "data/LAPD_Status_Codes.csv",
				CodeColumn:  "status_code",
				DescColumns: []string{"description"},
			},
			MOCodes: TableRef{
				Path:        "data/mocodes.csv",
				CodeColumn:  "MO Code",
				DescColumns: []string{"Description"},
			},
		},
		Output:  Output{Dir: "enriched", Workbook: true},
		Workers: 1,
		HTTP:    HTTP{Addr: ":8080"},
		Log:     Log{Level: "info", Format: "text"},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults untouched.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return cfg, nil
}

// Source builds the loader for one reference table. name is the table's
// display name used in errors and logs.
func (r TableRef) Source(name string) (refdata.Source, error) {
	format := strings.ToLower(r.Format)
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(r.Path)), ".")
	}
	switch format {
	case "csv":
		return refdata.CSVSource{
			TableName: name, Path: r.Path,
			CodeColumn: r.CodeColumn, DescColumns: r.DescColumns,
		}, nil
	case "xlsx":
		return refdata.XLSXSource{
			TableName: name, Path: r.Path, Sheet: r.Sheet,
			CodeColumn: r.CodeColumn, DescColumns: r.DescColumns,
		}, nil
	case "sqlite", "sqlite3", "db":
		table := r.Table
		if table == "" {
			table = strings.TrimSuffix(filepath.Base(r.Path), filepath.Ext(r.Path))
		}
		return refdata.SQLiteSource{
			TableName: name, Path: r.Path, Table: table,
			CodeColumn: r.CodeColumn, DescColumns: r.DescColumns,
		}, nil
	}
	return nil, fmt.Errorf("reference %s: unsupported format %q (%s)", name, format, r.Path)
}

// Paths lists every input file the run needs, for upfront validation.
func (c Config) Paths() []string {
	return []string{
		c.Fact,
		c.References.CrimeCodes.Path,
		c.References.Districts.Path,
		c.References.StatusCodes.Path,
		c.References.MOCodes.Path,
	}
}
