package commands

import (
	"github.com/spf13/cobra"

	"github.com/apac-ml-tfc/forecast-poc/cmd/forecastpoc/handlers"
	"github.com/apac-ml-tfc/forecast-poc/internal/platform/iam"
)

// Role returns the command for bootstrapping the Forecast service role.
func Role() *cobra.Command {
	var (
		configPath string
		roleName   string
	)

	cmd := &cobra.Command{
		Use:   "role",
		Short: "Ensure the IAM role the Forecast service assumes",
		Long: `Ensure the IAM role the Amazon Forecast service assumes to read your data.

Forecast import jobs need a role trusted by forecast.amazonaws.com with access
to the staging S3 bucket. This command creates the role if it does not exist,
attaches the required policies, and prints the role ARN to paste into the
notebooks. Re-running against an existing role is a no-op.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Role(cmd.Context(), configPath, roleName)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: forecastpoc.yaml)")
	cmd.Flags().StringVar(&roleName, "name", iam.DefaultRoleName, "Name of the IAM role")

	return cmd
}
