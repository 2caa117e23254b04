package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/apac-ml-tfc/forecast-poc/internal/config"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// runWizard runs the interactive configuration wizard.
	runWizard = config.RunWizard

	// writeConfig writes the config to a file.
	writeConfig = config.Write
)

// Init runs the configuration wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string) error {
	if fileExists(outputPath) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	cfg := result.ToConfig()

	if err := writeConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)

	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("forecastpoc - Amazon Forecast POC environment")
	fmt.Println("=============================================")
	fmt.Println()
	fmt.Println("This wizard creates an environment configuration with sensible defaults.")
	fmt.Println("Just answer a few simple questions.")
	fmt.Println()
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	// Summary
	fmt.Println("Environment Summary")
	fmt.Println("-------------------")
	fmt.Printf("  Stack:     %s\n", cfg.StackName)
	fmt.Printf("  Region:    %s\n", cfg.Region)
	fmt.Printf("  Notebook:  %s (%s, %d GB)\n", cfg.Notebook.Name, cfg.Notebook.InstanceType, cfg.Notebook.VolumeSizeGB)
	fmt.Printf("  Notebooks: %s\n", cfg.Notebook.RepoURL)
	fmt.Println()

	// Next steps
	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Println("  1. Make sure your AWS credentials are available")
	fmt.Println("     (shared config, environment, or the credentials block in the file)")
	fmt.Println()
	fmt.Printf("  2. Review %s if needed\n", outputPath)
	fmt.Println()
	fmt.Println("  3. Create the environment:")
	fmt.Println("     forecastpoc deploy")
	fmt.Println()
}
