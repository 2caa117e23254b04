package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/apac-ml-tfc/forecast-poc/internal/platform/iam"
)

// Factory function variables for role - can be replaced in tests.
var (
	// newRoleManager creates an IAM role client.
	newRoleManager = func(awsCfg aws.Config) iam.RoleManager {
		return iam.NewClient(awsCfg)
	}
)

// Role ensures the IAM role the Forecast service assumes to read staged
// data, and prints its ARN. Re-running against an existing role is a no-op.
func Role(ctx context.Context, configPath, roleName string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	awsCfg, err := newAWSConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to resolve AWS credentials: %w", err)
	}

	log.Printf("Ensuring Forecast service role: %s", roleName)

	arn, err := newRoleManager(awsCfg).EnsureForecastRole(ctx, roleName)
	if err != nil {
		return fmt.Errorf("failed to ensure role: %w", err)
	}

	fmt.Println()
	fmt.Printf("Role ready: %s\n", arn)
	fmt.Println()
	fmt.Println("Use this ARN as the role for Forecast dataset import jobs.")
	return nil
}
