package config

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/apac-ml-tfc/forecast-poc/internal/template"
)

// WizardResult holds the user's choices from the init wizard.
type WizardResult struct {
	StackName    string
	Region       string
	NotebookName string
	InstanceType string
	VolumeSizeGB int
	RepoURL      string
}

// instanceTypeOptions are the options shown in the wizard size selector, with
// a short description per size class.
var instanceTypeDescriptions = map[string]string{
	"ml.t2.medium":  "2 vCPU, 4GB RAM (burstable)",
	"ml.t3.medium":  "2 vCPU, 4GB RAM (burstable)",
	"ml.t3.large":   "2 vCPU, 8GB RAM (burstable)",
	"ml.t3.xlarge":  "4 vCPU, 16GB RAM (burstable)",
	"ml.m5.xlarge":  "4 vCPU, 16GB RAM",
	"ml.m5.2xlarge": "8 vCPU, 32GB RAM",
	"ml.c5.xlarge":  "4 vCPU, 8GB RAM (compute optimized)",
	"ml.p3.2xlarge": "8 vCPU, 61GB RAM, 1 GPU",
}

// RunWizard runs the interactive configuration wizard.
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{
		// Defaults
		StackName:    DefaultStackName,
		Region:       DefaultRegion,
		NotebookName: template.DefaultNotebookName,
		InstanceType: template.DefaultInstanceType,
		VolumeSizeGB: template.DefaultVolumeSizeGB,
		RepoURL:      template.DefaultRepoURL,
	}
	volumeSize := strconv.Itoa(result.VolumeSizeGB)

	form := huh.NewForm(
		// Stack identity
		huh.NewGroup(
			huh.NewInput().
				Title("Stack name").
				Description("Name for the CloudFormation stack").
				Placeholder(DefaultStackName).
				Value(&result.StackName).
				Validate(validateWizardStackName),
			huh.NewInput().
				Title("AWS region").
				Description("Region to provision in (must offer Amazon Forecast)").
				Placeholder(DefaultRegion).
				Value(&result.Region),
		),

		// Notebook configuration
		huh.NewGroup(
			huh.NewInput().
				Title("Notebook name").
				Description("Name of the SageMaker notebook instance").
				Placeholder(template.DefaultNotebookName).
				Value(&result.NotebookName),
			huh.NewSelect[string]().
				Title("Instance size").
				Description("Size class for the hosted notebook").
				Options(instanceTypeOptions()...).
				Value(&result.InstanceType),
			huh.NewInput().
				Title("Volume size (GB)").
				Description(fmt.Sprintf("EBS volume attached to the notebook (%d-%d)", template.MinVolumeSizeGB, template.MaxVolumeSizeGB)).
				Value(&volumeSize).
				Validate(validateWizardVolumeSize),
		),

		// Onboarding repository
		huh.NewGroup(
			huh.NewInput().
				Title("Source repository").
				Description("Git repository cloned into the notebook at creation").
				Value(&result.RepoURL),
		),
	).WithTheme(huh.ThemeBase())

	if err := form.RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("wizard aborted: %w", err)
	}

	// Validated above; parse cannot fail here.
	result.VolumeSizeGB, _ = strconv.Atoi(strings.TrimSpace(volumeSize))

	return result, nil
}

// ToConfig converts the wizard result to a configuration.
func (r *WizardResult) ToConfig() *Config {
	cfg := &Config{
		StackName: r.StackName,
		Region:    r.Region,
		Notebook: NotebookConfig{
			Name:         r.NotebookName,
			InstanceType: r.InstanceType,
			VolumeSizeGB: r.VolumeSizeGB,
			RepoURL:      r.RepoURL,
		},
	}
	cfg.applyDefaults()
	return cfg
}

// instanceTypeOptions builds the select options from the template allow-list.
func instanceTypeOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(template.AllowedInstanceTypes))
	for _, it := range template.AllowedInstanceTypes {
		label := it
		if desc := instanceTypeDescriptions[it]; desc != "" {
			label = fmt.Sprintf("%s - %s", it, desc)
		}
		opts = append(opts, huh.NewOption(label, it))
	}
	return opts
}

func validateWizardStackName(s string) error {
	if s == "" {
		return fmt.Errorf("stack name is required")
	}
	if !stackNameRegex.MatchString(s) {
		return fmt.Errorf("must start with a letter and contain only letters, digits, and hyphens")
	}
	return nil
}

func validateWizardVolumeSize(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("must be an integer")
	}
	if v < template.MinVolumeSizeGB || v > template.MaxVolumeSizeGB {
		return fmt.Errorf("must be between %d and %d", template.MinVolumeSizeGB, template.MaxVolumeSizeGB)
	}
	return nil
}
