package commands

import (
	"github.com/spf13/cobra"

	"github.com/apac-ml-tfc/forecast-poc/cmd/forecastpoc/handlers"
	"github.com/apac-ml-tfc/forecast-poc/internal/config"
)

// Init returns the command for creating a configuration file.
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file interactively",
		Long: `Create a forecastpoc configuration file.

Runs an interactive wizard asking for the stack name, region, and notebook
instance settings, and writes the answers to a YAML file that 'forecastpoc
deploy' consumes.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", config.DefaultConfigFilename, "Path to write the configuration file")

	return cmd
}
