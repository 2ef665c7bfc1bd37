package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lapd_enrich_runs_total",
		Help: "Enrichment runs by outcome.",
	}, []string{"outcome"})

	rowsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lapd_enrich_rows_processed_total",
		Help: "Incident rows run through the resolver.",
	})

	unknownCodes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lapd_enrich_unknown_codes_total",
		Help: "Codes that missed their reference table, by output column.",
	}, []string{"column"})
)
