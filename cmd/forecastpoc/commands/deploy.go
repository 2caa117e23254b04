package commands

import (
	"github.com/spf13/cobra"

	"github.com/apac-ml-tfc/forecast-poc/cmd/forecastpoc/handlers"
)

// Deploy returns the command for provisioning the POC environment.
//
// This command synthesizes the CloudFormation template locally, validates the
// configuration, submits the stack, and waits for the notebook instance and
// execution role to materialize.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect forecastpoc.yaml)
//	--studio: Provision a SageMaker Studio domain instead of a notebook instance
func Deploy() *cobra.Command {
	var (
		configPath string
		studio     bool
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Create or update the POC environment",
		Long: `Create or update the Forecast POC environment.

This command provisions a SageMaker notebook instance preloaded with the POC
guide notebooks, plus the IAM execution role it runs under. Provisioning is
done through a CloudFormation stack, so re-running deploy after configuration
changes updates the environment in place, and resubmitting an unchanged
configuration is a no-op.

With --studio, the stack provisions a SageMaker Studio domain instead of a
notebook instance. The domain attaches to the VPC and subnets named in the
config, or to the account's default VPC when the config leaves them out.

If no config file is specified, it looks for forecastpoc.yaml in the current
directory and its parents. Use 'forecastpoc init' to create one.

Examples:
  # Deploy using forecastpoc.yaml in the current directory
  forecastpoc deploy

  # Deploy using a specific config file
  forecastpoc deploy -c production.yaml

  # Deploy the Studio-domain variant
  forecastpoc deploy --studio

  # Re-deploy after configuration changes
  forecastpoc deploy`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Deploy(cmd.Context(), configPath, studio)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: forecastpoc.yaml)")
	cmd.Flags().BoolVar(&studio, "studio", false, "Provision a SageMaker Studio domain instead of a notebook instance")

	return cmd
}
