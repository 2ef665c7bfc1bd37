// lapd-enrich resolves the coded columns of the LAPD incident dataset
// (crime codes, MO codes, reporting districts, status codes) into
// readable classifications by joining against reference tables, and
// writes the enriched dataset plus a data-quality summary.
//
// Usage:
//
//	lapd-enrich enrich [--config cfg.yaml] [--fact file.csv] [-o dir]
//	lapd-enrich serve  [--config cfg.yaml] [--addr :8080]
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "lapd-enrich",
	Short: "Resolve coded LAPD incident columns against reference tables",
	Long: "lapd-enrich joins the raw incident export against the crime-code,\n" +
		"MO-code, reporting-district and status-code reference tables,\n" +
		"appending resolved columns and reporting unknown-code rates.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(enrichCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
