// Package cloudformation wraps the CloudFormation API used to materialize
// the Forecast POC stack. CloudFormation is the orchestration engine: it
// resolves resource creation order, enforces the declared parameter
// constraints, and rolls back on partial failure. This package only submits
// the description and observes the outcome.
package cloudformation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/aws/smithy-go"

	"github.com/apac-ml-tfc/forecast-poc/internal/util/retry"
)

// Op describes what a CreateOrUpdate call did to the stack.
type Op string

const (
	// OpCreated means a new stack was created.
	OpCreated Op = "created"
	// OpUpdated means an existing stack was updated in place.
	OpUpdated Op = "updated"
	// OpUnchanged means the submitted description matched the materialized
	// stack and the engine had nothing to do.
	OpUnchanged Op = "unchanged"
)

// Stack is the subset of stack state the provisioner cares about.
type Stack struct {
	ID           string
	Name         string
	Status       string
	StatusReason string
	Outputs      map[string]string
}

// StackManager defines the stack operations used by the provisioning
// pipeline. Implemented by Client; replaced by mocks in tests.
type StackManager interface {
	// CreateOrUpdate submits the template, creating the stack or updating it
	// in place. Resubmitting an identical description is a no-op.
	CreateOrUpdate(ctx context.Context, name, templateBody string, params map[string]string) (Op, error)

	// Describe returns the current stack state, or an error satisfying
	// IsNotFound if the stack does not exist.
	Describe(ctx context.Context, name string) (*Stack, error)

	// WaitForOperation polls until the stack reaches a terminal state,
	// reporting each status transition. Returns the final stack state, or an
	// error if the engine reports failure or rollback.
	WaitForOperation(ctx context.Context, name string, report func(status string)) (*Stack, error)

	// Delete requests stack deletion. Deleting an absent stack is a no-op.
	Delete(ctx context.Context, name string) error

	// WaitForDelete polls until the stack is gone.
	WaitForDelete(ctx context.Context, name string, report func(status string)) error
}

// api is the slice of the CloudFormation SDK client this package uses.
type api interface {
	CreateStack(ctx context.Context, in *cloudformation.CreateStackInput, opts ...func(*cloudformation.Options)) (*cloudformation.CreateStackOutput, error)
	UpdateStack(ctx context.Context, in *cloudformation.UpdateStackInput, opts ...func(*cloudformation.Options)) (*cloudformation.UpdateStackOutput, error)
	DescribeStacks(ctx context.Context, in *cloudformation.DescribeStacksInput, opts ...func(*cloudformation.Options)) (*cloudformation.DescribeStacksOutput, error)
	DeleteStack(ctx context.Context, in *cloudformation.DeleteStackInput, opts ...func(*cloudformation.Options)) (*cloudformation.DeleteStackOutput, error)
}

// Client implements StackManager against the real CloudFormation API.
type Client struct {
	cfn          api
	pollInterval time.Duration
}

// NewClient creates a CloudFormation client from an AWS SDK configuration.
func NewClient(awsCfg aws.Config) *Client {
	return &Client{
		cfn:          cloudformation.NewFromConfig(awsCfg),
		pollInterval: 5 * time.Second,
	}
}

// CreateOrUpdate implements StackManager.
func (c *Client) CreateOrUpdate(ctx context.Context, name, templateBody string, params map[string]string) (Op, error) {
	parameters := toParameters(params)

	_, err := c.cfn.CreateStack(ctx, &cloudformation.CreateStackInput{
		StackName:    aws.String(name),
		TemplateBody: aws.String(templateBody),
		Parameters:   parameters,
		// The template declares an IAM role, which CloudFormation refuses to
		// create without an explicit acknowledgement.
		Capabilities: []types.Capability{types.CapabilityCapabilityIam},
	})
	if err == nil {
		return OpCreated, nil
	}
	if !isAlreadyExists(err) {
		return "", fmt.Errorf("failed to create stack %s: %w", name, err)
	}

	_, err = c.cfn.UpdateStack(ctx, &cloudformation.UpdateStackInput{
		StackName:    aws.String(name),
		TemplateBody: aws.String(templateBody),
		Parameters:   parameters,
		Capabilities: []types.Capability{types.CapabilityCapabilityIam},
	})
	if err != nil {
		if isNoUpdates(err) {
			return OpUnchanged, nil
		}
		return "", fmt.Errorf("failed to update stack %s: %w", name, err)
	}
	return OpUpdated, nil
}

// Describe implements StackManager.
func (c *Client) Describe(ctx context.Context, name string) (*Stack, error) {
	out, err := c.cfn.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{
		StackName: aws.String(name),
	})
	if err != nil {
		if isStackNotFound(err) {
			return nil, &NotFoundError{Name: name}
		}
		return nil, fmt.Errorf("failed to describe stack %s: %w", name, err)
	}
	if len(out.Stacks) == 0 {
		return nil, &NotFoundError{Name: name}
	}
	return fromSDKStack(out.Stacks[0]), nil
}

// WaitForOperation implements StackManager.
func (c *Client) WaitForOperation(ctx context.Context, name string, report func(status string)) (*Stack, error) {
	for {
		stack, err := c.describeWithRetry(ctx, name)
		if err != nil {
			return nil, err
		}

		if report != nil {
			report(stack.Status)
		}

		switch {
		case isSuccessStatus(stack.Status):
			return stack, nil
		case isFailureStatus(stack.Status):
			return stack, fmt.Errorf("stack %s entered %s: %s", name, stack.Status, stack.StatusReason)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("wait for stack %s canceled: %w", name, ctx.Err())
		case <-time.After(c.pollInterval):
		}
	}
}

// Delete implements StackManager.
func (c *Client) Delete(ctx context.Context, name string) error {
	_, err := c.cfn.DeleteStack(ctx, &cloudformation.DeleteStackInput{
		StackName: aws.String(name),
	})
	if err != nil {
		if isStackNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to delete stack %s: %w", name, err)
	}
	return nil
}

// WaitForDelete implements StackManager.
func (c *Client) WaitForDelete(ctx context.Context, name string, report func(status string)) error {
	for {
		stack, err := c.Describe(ctx, name)
		if err != nil {
			if IsNotFound(err) {
				return nil
			}
			return err
		}

		if report != nil {
			report(stack.Status)
		}

		if stack.Status == string(types.StackStatusDeleteComplete) {
			return nil
		}
		if stack.Status == string(types.StackStatusDeleteFailed) {
			return fmt.Errorf("stack %s entered DELETE_FAILED: %s", name, stack.StatusReason)
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("wait for stack %s deletion canceled: %w", name, ctx.Err())
		case <-time.After(c.pollInterval):
		}
	}
}

// describeWithRetry retries transient DescribeStacks failures. A missing
// stack is fatal and surfaces immediately.
func (c *Client) describeWithRetry(ctx context.Context, name string) (*Stack, error) {
	var stack *Stack
	err := retry.WithExponentialBackoff(ctx, func() error {
		s, err := c.Describe(ctx, name)
		if err != nil {
			if IsNotFound(err) {
				return retry.Fatal(err)
			}
			return err
		}
		stack = s
		return nil
	}, retry.WithMaxRetries(3))
	if err != nil {
		return nil, err
	}
	return stack, nil
}

// NotFoundError reports that a stack does not exist.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("stack %s does not exist", e.Name)
}

// IsNotFound reports whether err indicates a missing stack.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// fromSDKStack converts an SDK stack into the local representation.
func fromSDKStack(s types.Stack) *Stack {
	stack := &Stack{
		ID:      aws.ToString(s.StackId),
		Name:    aws.ToString(s.StackName),
		Status:  string(s.StackStatus),
		Outputs: make(map[string]string, len(s.Outputs)),
	}
	if s.StackStatusReason != nil {
		stack.StatusReason = *s.StackStatusReason
	}
	for _, out := range s.Outputs {
		stack.Outputs[aws.ToString(out.OutputKey)] = aws.ToString(out.OutputValue)
	}
	return stack
}

// toParameters converts a parameter map to SDK parameters in a stable order.
func toParameters(params map[string]string) []types.Parameter {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parameters := make([]types.Parameter, 0, len(keys))
	for _, k := range keys {
		parameters = append(parameters, types.Parameter{
			ParameterKey:   aws.String(k),
			ParameterValue: aws.String(params[k]),
		})
	}
	return parameters
}

// isSuccessStatus reports whether status is a terminal success state for a
// create or update operation.
func isSuccessStatus(status string) bool {
	switch types.StackStatus(status) {
	case types.StackStatusCreateComplete, types.StackStatusUpdateComplete:
		return true
	default:
		return false
	}
}

// isFailureStatus reports whether status is a terminal or rolling-back
// failure state for a create or update operation.
func isFailureStatus(status string) bool {
	switch types.StackStatus(status) {
	case types.StackStatusCreateFailed,
		types.StackStatusRollbackInProgress,
		types.StackStatusRollbackComplete,
		types.StackStatusRollbackFailed,
		types.StackStatusUpdateRollbackInProgress,
		types.StackStatusUpdateRollbackComplete,
		types.StackStatusUpdateRollbackFailed,
		types.StackStatusDeleteComplete,
		types.StackStatusDeleteFailed:
		return true
	default:
		return false
	}
}

// isAlreadyExists checks if the error indicates the stack already exists.
func isAlreadyExists(err error) bool {
	if err == nil {
		return false
	}

	var aee *types.AlreadyExistsException
	if errors.As(err, &aee) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "AlreadyExistsException"
	}
	return false
}

// isNoUpdates checks for the engine's no-op signal on identical
// resubmission. CloudFormation reports it as a ValidationError rather than a
// typed exception.
func isNoUpdates(err error) bool {
	if err == nil {
		return false
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "ValidationError" &&
			strings.Contains(apiErr.ErrorMessage(), "No updates are to be performed")
	}
	return false
}

// isStackNotFound checks if the error indicates a missing stack.
func isStackNotFound(err error) bool {
	if err == nil {
		return false
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "ValidationError" &&
			strings.Contains(apiErr.ErrorMessage(), "does not exist")
	}
	return false
}
