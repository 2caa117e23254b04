package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/mattn/go-isatty"

	"github.com/apac-ml-tfc/forecast-poc/internal/platform/cloudformation"
	"github.com/apac-ml-tfc/forecast-poc/internal/platform/sagemaker"
	"github.com/apac-ml-tfc/forecast-poc/internal/template"
)

// Factory function variables for status - can be replaced in tests.
var (
	// newNotebookManager creates a SageMaker notebook client.
	newNotebookManager = func(awsCfg aws.Config) sagemaker.NotebookManager {
		return sagemaker.NewClient(awsCfg)
	}
)

// EnvironmentStatus represents the observed state of the POC environment.
type EnvironmentStatus struct {
	StackName   string          `json:"stackName"`
	Region      string          `json:"region"`
	Deployed    bool            `json:"deployed"`
	StackStatus string          `json:"stackStatus,omitempty"`
	RoleArn     string          `json:"roleArn,omitempty"`
	Notebook    *NotebookStatus `json:"notebook,omitempty"`
}

// NotebookStatus represents the live notebook instance state.
type NotebookStatus struct {
	Name          string `json:"name"`
	Status        string `json:"status"`
	InstanceType  string `json:"instanceType,omitempty"`
	VolumeSizeGB  int32  `json:"volumeSizeGB,omitempty"`
	URL           string `json:"url,omitempty"`
	RepositoryURL string `json:"repositoryUrl,omitempty"`
	FailureReason string `json:"failureReason,omitempty"`
}

// Status handles the status command.
//
// It reports the CloudFormation stack state and, once the stack has outputs,
// queries the live notebook instance for its status and Jupyter URL.
func Status(ctx context.Context, configPath string, jsonOutput bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	awsCfg, err := newAWSConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to resolve AWS credentials: %w", err)
	}

	status := &EnvironmentStatus{
		StackName: cfg.StackName,
		Region:    cfg.Region,
	}

	stack, err := newStackManager(awsCfg).Describe(ctx, cfg.StackName)
	switch {
	case cloudformation.IsNotFound(err):
		// Not deployed; report that rather than failing.
	case err != nil:
		return fmt.Errorf("failed to describe stack: %w", err)
	default:
		status.Deployed = true
		status.StackStatus = stack.Status
		status.RoleArn = stack.Outputs[template.OutputRoleArn]
		status.Notebook = describeNotebook(ctx, awsCfg, notebookName(stack, cfg.Notebook.Name))
	}

	return printStatus(status, jsonOutput)
}

// notebookName prefers the stack output over the configured name, since the
// output reflects what was actually materialized.
func notebookName(stack *cloudformation.Stack, configured string) string {
	if name := stack.Outputs[template.OutputNotebookName]; name != "" {
		return name
	}
	return configured
}

// describeNotebook queries the live notebook instance. A missing instance is
// normal while the stack is still creating, so it is reported as pending
// rather than as an error.
func describeNotebook(ctx context.Context, awsCfg aws.Config, name string) *NotebookStatus {
	nb, err := newNotebookManager(awsCfg).DescribeNotebook(ctx, name)
	if sagemaker.IsNotFound(err) {
		return &NotebookStatus{Name: name, Status: "Pending"}
	}
	if err != nil {
		return &NotebookStatus{Name: name, Status: "Unknown", FailureReason: err.Error()}
	}

	return &NotebookStatus{
		Name:          nb.Name,
		Status:        nb.Status,
		InstanceType:  nb.InstanceType,
		VolumeSizeGB:  nb.VolumeSizeGB,
		URL:           nb.URL,
		RepositoryURL: nb.RepositoryURL,
		FailureReason: nb.FailureReason,
	}
}

// printStatus writes the status as JSON, styled text, or plain text
// depending on the flags and whether stdout is a terminal.
func printStatus(status *EnvironmentStatus, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(status)
	}

	if isInteractiveTTY() {
		fmt.Print(renderStatus(status))
		return nil
	}

	printStatusPlain(status)
	return nil
}

// printStatusPlain writes an unstyled status report for non-TTY output.
func printStatusPlain(status *EnvironmentStatus) {
	fmt.Printf("Stack:  %s (%s)\n", status.StackName, status.Region)
	if !status.Deployed {
		fmt.Println("Status: not deployed")
		fmt.Println("Run 'forecastpoc deploy' to create the environment.")
		return
	}

	fmt.Printf("Status: %s\n", status.StackStatus)
	if status.RoleArn != "" {
		fmt.Printf("Role:   %s\n", status.RoleArn)
	}
	if nb := status.Notebook; nb != nil {
		fmt.Printf("Notebook %s: %s\n", nb.Name, nb.Status)
		if nb.URL != "" {
			fmt.Printf("  URL: https://%s\n", nb.URL)
		}
		if nb.FailureReason != "" {
			fmt.Printf("  Failure: %s\n", nb.FailureReason)
		}
	}
}

func isInteractiveTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
