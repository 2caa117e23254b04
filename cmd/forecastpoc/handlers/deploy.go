// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/apac-ml-tfc/forecast-poc/internal/config"
	"github.com/apac-ml-tfc/forecast-poc/internal/platform/awsconn"
	"github.com/apac-ml-tfc/forecast-poc/internal/platform/cloudformation"
	"github.com/apac-ml-tfc/forecast-poc/internal/platform/ec2"
	"github.com/apac-ml-tfc/forecast-poc/internal/provisioning"
	"github.com/apac-ml-tfc/forecast-poc/internal/template"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfigFile loads config from a file.
	loadConfigFile = config.Load

	// findConfigFile locates the default config file.
	findConfigFile = config.FindConfigFile

	// newAWSConfig resolves AWS credentials and region.
	newAWSConfig = awsconn.Load

	// newStackManager creates a CloudFormation stack client.
	newStackManager = func(awsCfg aws.Config) cloudformation.StackManager {
		return cloudformation.NewClient(awsCfg)
	}

	// newProvisioningContext creates a new provisioning context.
	newProvisioningContext = provisioning.NewContext

	// newNetworkDiscoverer creates an EC2 network discoverer for Studio
	// deployments.
	newNetworkDiscoverer = func(awsCfg aws.Config) ec2.NetworkDiscoverer {
		return ec2.NewClient(awsCfg)
	}
)

// Deploy provisions the Forecast POC environment.
//
// This function orchestrates the complete provisioning workflow:
//  1. Loads and validates the environment configuration
//  2. Synthesizes the CloudFormation template locally (validation phase)
//  3. Submits the stack, creating or updating it in place (stack phase)
//  4. Waits for the engine to reach a terminal state, reporting transitions
//
// Validation failures are reported before any AWS call is made. Resubmitting
// an unchanged configuration is detected by the engine and treated as a
// successful no-op.
//
// With studio set, the stack provisions a SageMaker Studio domain instead of
// a notebook instance. A network phase then runs between validation and stack
// submission to resolve the domain's VPC placement.
func Deploy(ctx context.Context, configPath string, studio bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if studio {
		cfg.Studio.Enabled = true
		if cfg.Studio.DomainName == "" {
			cfg.Studio.DomainName = template.DefaultDomainName
		}
	}

	log.Printf("Deploying environment stack: %s (%s)", cfg.StackName, cfg.Region)

	pCtx, err := newContext(ctx, cfg)
	if err != nil {
		return err
	}

	phases := []provisioning.Phase{
		provisioning.NewValidationPhase(),
		provisioning.NewStackPhase(),
	}
	if cfg.Studio.Enabled {
		phases = []provisioning.Phase{
			provisioning.NewValidationPhase(),
			provisioning.NewNetworkPhase(),
			provisioning.NewStackPhase(),
		}
	}
	if err := provisioning.RunPhases(pCtx, phases); err != nil {
		return fmt.Errorf("deploy failed: %w", err)
	}

	fmt.Print(renderDeploySummary(cfg, pCtx.State))
	return nil
}

// loadConfig loads and validates the environment configuration. If configPath
// is empty, it looks for forecastpoc.yaml in the current directory and its
// parents.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		path, err := findConfigFile()
		if err != nil {
			return nil, fmt.Errorf("no config file found: %w\nRun 'forecastpoc init' to create one", err)
		}
		configPath = path
	}

	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log.Printf("Using config: %s", configPath)
	return cfg, nil
}

// newContext resolves AWS credentials and builds a provisioning context.
func newContext(ctx context.Context, cfg *config.Config) (*provisioning.Context, error) {
	awsCfg, err := newAWSConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve AWS credentials: %w", err)
	}

	pCtx := newProvisioningContext(ctx, cfg, newStackManager(awsCfg))
	if cfg.Studio.Enabled {
		pCtx.Network = newNetworkDiscoverer(awsCfg)
	}
	return pCtx, nil
}
