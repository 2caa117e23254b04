package commands

import (
	"github.com/spf13/cobra"

	"github.com/apac-ml-tfc/forecast-poc/cmd/forecastpoc/handlers"
)

// Stage returns the command for uploading prepared data to S3.
//
// Required arguments:
//
//	file:   Local data file to upload (gzip-compressed files are expanded)
//	bucket: Destination S3 bucket (created if absent)
//
// Optional flags:
//
//	--key, -k: Object key (default: the file's base name, without .gz)
func Stage() *cobra.Command {
	var (
		configPath string
		key        string
	)

	cmd := &cobra.Command{
		Use:   "stage <file> <bucket>",
		Short: "Upload prepared data to an S3 staging bucket",
		Long: `Upload a prepared data file to the S3 bucket Forecast imports from.

The bucket is created if it does not exist. Files ending in .gz are expanded
during upload, since Forecast import jobs read plain CSV.

Examples:
  # Stage a CSV, creating the bucket on first use
  forecastpoc stage data/item-demand.csv my-forecast-poc-data

  # Stage a compressed file under an explicit key
  forecastpoc stage data/item-demand.csv.gz my-forecast-poc-data -k elec/demand.csv`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Stage(cmd.Context(), configPath, args[0], args[1], key)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: forecastpoc.yaml)")
	cmd.Flags().StringVarP(&key, "key", "k", "", "Object key (default: file base name)")

	return cmd
}
