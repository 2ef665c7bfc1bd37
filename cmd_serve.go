package main

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/crimedata-tools/lapd-enrich/config"
	"github.com/crimedata-tools/lapd-enrich/logging"
)

var (
	serveConfigPath string
	serveAddr       string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the upload-enrich-download flow over HTTP",
	Long: "Starts an HTTP server: POST a raw incident CSV to /upload, fetch the\n" +
		"enriched workbook from /download/, scrape counters from /metrics.",
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "path to YAML config")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "override the listen address")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(serveConfigPath)
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.HTTP.Addr = serveAddr
	}

	logging.Init(cfg.Log.Level, cfg.Log.Format)

	srv := newServer(cfg)
	srv.log.Info("server started", "addr", cfg.HTTP.Addr)
	return http.ListenAndServe(cfg.HTTP.Addr, srv.routes())
}
