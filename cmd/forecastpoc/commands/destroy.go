package commands

import (
	"github.com/spf13/cobra"

	"github.com/apac-ml-tfc/forecast-poc/cmd/forecastpoc/handlers"
)

// Destroy returns the command for tearing down the POC environment.
func Destroy() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Tear down the POC environment",
		Long: `Delete the Forecast POC CloudFormation stack.

This removes the notebook instance and its execution role. Deleting an
environment that does not exist is a no-op.

Note: IAM roles created separately with 'forecastpoc role' and staged S3 data
are not part of the stack and are left in place.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Destroy(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: forecastpoc.yaml)")

	return cmd
}
