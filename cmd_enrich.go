package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crimedata-tools/lapd-enrich/config"
	"github.com/crimedata-tools/lapd-enrich/logging"
	"github.com/crimedata-tools/lapd-enrich/pipeline"
	"github.com/crimedata-tools/lapd-enrich/report"
)

var (
	enrichConfigPath string
	enrichFactPath   string
	enrichOutDir     string
	enrichWorkers    int
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Run one batch enrichment pass and write the artifacts",
	RunE:  runEnrich,
}

func init() {
	enrichCmd.Flags().StringVarP(&enrichConfigPath, "config", "c", "", "path to YAML config (defaults apply when omitted)")
	enrichCmd.Flags().StringVar(&enrichFactPath, "fact", "", "override the fact table path")
	enrichCmd.Flags().StringVarP(&enrichOutDir, "out-dir", "o", "", "override the output directory")
	enrichCmd.Flags().IntVar(&enrichWorkers, "workers", 0, "override the resolving worker count")
}

func runEnrich(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(enrichConfigPath)
	if err != nil {
		return err
	}
	if enrichFactPath != "" {
		cfg.Fact = enrichFactPath
	}
	if enrichOutDir != "" {
		cfg.Output.Dir = enrichOutDir
	}
	if enrichWorkers > 0 {
		cfg.Workers = enrichWorkers
	}

	logging.Init(cfg.Log.Level, cfg.Log.Format)
	log := logging.New("enrich")

	if err := pipeline.ValidateInputs(cfg.Paths()...); err != nil {
		return err
	}

	res, err := runPipeline(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return err
	}
	base := strings.TrimSuffix(filepath.Base(cfg.Fact), filepath.Ext(cfg.Fact))
	if cfg.Output.Workbook {
		out := filepath.Join(cfg.Output.Dir, base+"_enriched.xlsx")
		if err := report.WriteWorkbook(out, res); err != nil {
			return err
		}
		log.Info("workbook written", "path", out)
	}
	if cfg.Output.CSV {
		out := filepath.Join(cfg.Output.Dir, base+"_enriched.csv")
		if err := report.WriteCSV(out, res.Table); err != nil {
			return err
		}
		log.Info("csv written", "path", out)
	}
	if cfg.Output.SQLite {
		out := filepath.Join(cfg.Output.Dir, base+"_enriched.db")
		if err := report.SaveSQLite(out, res.Table); err != nil {
			return err
		}
		log.Info("sqlite written", "path", out)
	}

	report.RenderSummary(cmd.OutOrStdout(), res.Summary)
	return nil
}

// runPipeline loads the fact table and runs one enrichment pass with the
// configured reference sources.
func runPipeline(ctx context.Context, cfg config.Config) (*pipeline.Result, error) {
	fact, err := pipeline.ReadFactCSV(cfg.Fact)
	if err != nil {
		return nil, err
	}
	srcs, err := buildSources(cfg)
	if err != nil {
		return nil, err
	}
	return pipeline.New(cfg.Workers).Run(ctx, fact, srcs)
}

func buildSources(cfg config.Config) (pipeline.Sources, error) {
	var s pipeline.Sources
	var err error
	if s.CrimeClasses, err = cfg.References.CrimeCodes.Source("crime codes"); err != nil {
		return s, err
	}
	if s.Districts, err = cfg.References.Districts.Source("districts"); err != nil {
		return s, err
	}
	if s.StatusCodes, err = cfg.References.StatusCodes.Source("status codes"); err != nil {
		return s, err
	}
	if s.MOCodes, err = cfg.References.MOCodes.Source("mo codes"); err != nil {
		return s, err
	}
	return s, nil
}
