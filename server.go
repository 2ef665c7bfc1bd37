package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/crimedata-tools/lapd-enrich/config"
	"github.com/crimedata-tools/lapd-enrich/logging"
	"github.com/crimedata-tools/lapd-enrich/report"
)

type server struct {
	cfg config.Config
	log *slog.Logger
}

func newServer(cfg config.Config) *server {
	return &server{cfg: cfg, log: logging.New("server")}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/upload", s.handleUpload)
	mux.Handle("/download/",
		http.StripPrefix("/download/", http.FileServer(http.Dir(s.cfg.Output.Dir))))
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// handleUpload accepts a raw incident CSV, runs one enrichment pass with
// the configured reference tables, and answers with the download path
// and the run summary. Schema failures come back as 500 with the
// offending table named; unknown codes never fail a request.
func (s *server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Only POST allowed", http.StatusMethodNotAllowed)
		return
	}
	file, hdr, err := r.FormFile("file")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	for _, d := range []string{"uploads", s.cfg.Output.Dir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	src := filepath.Join("uploads", filepath.Base(hdr.Filename))
	if err := saveUploaded(file, src); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cfg := s.cfg
	cfg.Fact = src
	res, err := runPipeline(r.Context(), cfg)
	if err != nil {
		runsTotal.WithLabelValues("failed").Inc()
		s.log.Error("enrichment failed", "file", hdr.Filename, "err", err)
		http.Error(w, "enrichment failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	runsTotal.WithLabelValues("ok").Inc()
	rowsProcessed.Add(float64(res.Summary.RowCount))
	for _, c := range res.Summary.Columns {
		unknownCodes.WithLabelValues(c.Column).Add(float64(c.Unknown))
	}

	name := strings.TrimSuffix(filepath.Base(hdr.Filename), filepath.Ext(hdr.Filename)) + "_enriched.xlsx"
	out := filepath.Join(s.cfg.Output.Dir, name)
	if err := report.WriteWorkbook(out, res); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.log.Info("enriched upload", "file", hdr.Filename,
		"rows", res.Summary.RowCount, "unknown_codes", res.Summary.TotalUnknown())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"download": "/download/" + name,
		"summary":  res.Summary,
	})
}

func saveUploaded(src io.Reader, dst string) error {
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(f, src)
	return err
}
