package commands

import (
	"github.com/spf13/cobra"

	"github.com/apac-ml-tfc/forecast-poc/cmd/forecastpoc/handlers"
)

// Diagnose returns the command for validating prepared time-series data.
//
// Required arguments:
//
//	path: CSV file or directory of CSV files to analyze
//
// Optional flags:
//
//	--domain, -d: Forecast dataset domain (default: inferred from the data)
func Diagnose() *cobra.Command {
	var domain string

	cmd := &cobra.Command{
		Use:   "diagnose <path>",
		Short: "Check prepared time-series data before import",
		Long: `Analyze prepared target time-series data against a Forecast dataset domain.

Validates the schema, classifies fields as required, optional, or custom, and
reports record counts, missing values, the covered time span, and the number
of distinct series. Catching data problems here is much faster than waiting
for a failed Forecast import job.

Examples:
  # Analyze a single file, inferring the domain from its headers
  forecastpoc diagnose data/item-demand.csv

  # Analyze a directory of CSVs against the RETAIL domain
  forecastpoc diagnose data/ -d RETAIL`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return handlers.Diagnose(args[0], domain)
		},
	}

	cmd.Flags().StringVarP(&domain, "domain", "d", "", "Forecast dataset domain (default: inferred)")

	return cmd
}
