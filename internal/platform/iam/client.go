// Package iam wraps the IAM calls that bootstrap the Amazon Forecast service
// role. The forecasting service assumes this role to read training data from
// and write predictions to S3 on the user's behalf.
package iam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/iam/types"
)

// DefaultRoleName is the name given to the Forecast service role.
const DefaultRoleName = "ForecastPOCRole"

// rolePolicyARNs are attached to the Forecast service role.
var rolePolicyARNs = []string{
	"arn:aws:iam::aws:policy/AmazonForecastFullAccess",
	"arn:aws:iam::aws:policy/AmazonS3FullAccess",
}

// propagationDelay is how long a freshly created role needs before other
// services can assume it. IAM offers nothing to poll for this.
const propagationDelay = 60 * time.Second

// RoleManager defines the role operations used by the role handler.
type RoleManager interface {
	// EnsureForecastRole creates the Forecast service role if absent,
	// attaches its policies, and returns the role ARN.
	EnsureForecastRole(ctx context.Context, roleName string) (string, error)
}

// api is the slice of the IAM SDK client this package uses.
type api interface {
	CreateRole(ctx context.Context, in *iam.CreateRoleInput, opts ...func(*iam.Options)) (*iam.CreateRoleOutput, error)
	GetRole(ctx context.Context, in *iam.GetRoleInput, opts ...func(*iam.Options)) (*iam.GetRoleOutput, error)
	AttachRolePolicy(ctx context.Context, in *iam.AttachRolePolicyInput, opts ...func(*iam.Options)) (*iam.AttachRolePolicyOutput, error)
}

// Client implements RoleManager against the real IAM API.
type Client struct {
	iam   api
	delay time.Duration
}

// NewClient creates an IAM client from an AWS SDK configuration.
func NewClient(awsCfg aws.Config) *Client {
	return &Client{
		iam:   iam.NewFromConfig(awsCfg),
		delay: propagationDelay,
	}
}

// EnsureForecastRole implements RoleManager.
//
// Creating the role and attaching policies are both idempotent: an existing
// role is looked up instead, and re-attaching an attached policy is a no-op
// on the IAM side.
func (c *Client) EnsureForecastRole(ctx context.Context, roleName string) (string, error) {
	if roleName == "" {
		roleName = DefaultRoleName
	}

	trustPolicy, err := forecastTrustPolicy()
	if err != nil {
		return "", err
	}

	var roleArn string
	created := false

	out, err := c.iam.CreateRole(ctx, &iam.CreateRoleInput{
		RoleName:                 aws.String(roleName),
		AssumeRolePolicyDocument: aws.String(trustPolicy),
		Description:              aws.String("Allows Amazon Forecast to access S3 data on your behalf for the POC walkthrough."),
	})
	switch {
	case err == nil:
		roleArn = aws.ToString(out.Role.Arn)
		created = true
	case isEntityAlreadyExists(err):
		existing, getErr := c.iam.GetRole(ctx, &iam.GetRoleInput{RoleName: aws.String(roleName)})
		if getErr != nil {
			return "", fmt.Errorf("role %s exists but lookup failed: %w", roleName, getErr)
		}
		roleArn = aws.ToString(existing.Role.Arn)
	default:
		return "", fmt.Errorf("failed to create role %s: %w", roleName, err)
	}

	for _, policyArn := range rolePolicyARNs {
		if _, err := c.iam.AttachRolePolicy(ctx, &iam.AttachRolePolicyInput{
			RoleName:  aws.String(roleName),
			PolicyArn: aws.String(policyArn),
		}); err != nil {
			return "", fmt.Errorf("failed to attach policy %s to role %s: %w", policyArn, roleName, err)
		}
	}

	if created && c.delay > 0 {
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("wait for role propagation canceled: %w", ctx.Err())
		case <-time.After(c.delay):
		}
	}

	return roleArn, nil
}

// forecastTrustPolicy returns the trust policy document allowing the
// Forecast service principal to assume the role.
func forecastTrustPolicy() (string, error) {
	doc := map[string]any{
		"Version": "2012-10-17",
		"Statement": []any{
			map[string]any{
				"Effect": "Allow",
				"Principal": map[string]any{
					"Service": "forecast.amazonaws.com",
				},
				"Action": "sts:AssumeRole",
			},
		},
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal trust policy: %w", err)
	}
	return string(data), nil
}

// isEntityAlreadyExists checks if the error indicates the role already exists.
func isEntityAlreadyExists(err error) bool {
	if err == nil {
		return false
	}
	var eae *types.EntityAlreadyExistsException
	return errors.As(err, &eae)
}
