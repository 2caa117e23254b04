package commands

import (
	"github.com/spf13/cobra"

	"github.com/apac-ml-tfc/forecast-poc/cmd/forecastpoc/handlers"
)

// Status returns the command for inspecting the POC environment.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect forecastpoc.yaml)
//	--json:       Emit machine-readable JSON instead of styled output
func Status() *cobra.Command {
	var (
		configPath string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the state of the POC environment",
		Long: `Show the current state of the Forecast POC environment.

Reports the CloudFormation stack status and, once the stack is up, the live
notebook instance state including its Jupyter URL.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Status(cmd.Context(), configPath, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: forecastpoc.yaml)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output status as JSON")

	return cmd
}
