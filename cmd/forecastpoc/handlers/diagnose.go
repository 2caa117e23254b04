package handlers

import (
	"fmt"

	"github.com/apac-ml-tfc/forecast-poc/internal/diagnostic"
)

// Factory function variables for diagnose - can be replaced in tests.
var (
	// runDiagnose analyzes prepared time-series data.
	runDiagnose = diagnostic.Diagnose
)

// Diagnose analyzes prepared target time-series data against a Forecast
// dataset domain and prints the report.
func Diagnose(path, domain string) error {
	report, err := runDiagnose(path, diagnostic.Options{Domain: domain})
	if err != nil {
		return fmt.Errorf("diagnose failed: %w", err)
	}

	fmt.Print(report.Summary())
	return nil
}
