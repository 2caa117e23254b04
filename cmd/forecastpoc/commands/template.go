package commands

import (
	"github.com/spf13/cobra"

	"github.com/apac-ml-tfc/forecast-poc/cmd/forecastpoc/handlers"
)

// Template returns the command for rendering the CloudFormation template.
func Template() *cobra.Command {
	var (
		outputPath string
		studio     bool
	)

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Render the CloudFormation template",
		Long: `Render the POC environment's CloudFormation template.

Writes the exact YAML that 'forecastpoc deploy' submits, for review or for
launching through the CloudFormation console directly. With --studio the
Studio-domain variant is rendered instead of the notebook one.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Template(outputPath, studio)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the template to a file instead of stdout")
	cmd.Flags().BoolVar(&studio, "studio", false, "Render the Studio-domain template variant")

	return cmd
}
