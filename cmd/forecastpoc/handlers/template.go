package handlers

import (
	"fmt"
	"os"

	"github.com/apac-ml-tfc/forecast-poc/internal/template"
)

// Factory function variables for template - can be replaced in tests.
var (
	// writeFile writes data to a file.
	writeFile = os.WriteFile
)

// Template renders the environment's CloudFormation template to stdout or,
// when outputPath is set, to a file. With studio set the Studio-domain
// variant is rendered instead of the notebook one.
func Template(outputPath string, studio bool) error {
	tpl := template.New()
	if studio {
		tpl = template.NewStudio()
	}
	body, err := tpl.Render()
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}

	if outputPath == "" {
		fmt.Print(string(body))
		return nil
	}

	if err := writeFile(outputPath, body, 0o644); err != nil {
		return fmt.Errorf("failed to write template: %w", err)
	}

	fmt.Printf("Template written to %s\n", outputPath)
	return nil
}
