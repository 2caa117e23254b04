// Package sagemaker wraps the SageMaker API calls used to inspect the
// provisioned notebook instance.
package sagemaker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sagemaker"

	"github.com/aws/smithy-go"
)

// Notebook holds the observed state of a notebook instance.
type Notebook struct {
	Name          string
	Status        string
	InstanceType  string
	VolumeSizeGB  int32
	RoleArn       string
	URL           string
	RepositoryURL string
	FailureReason string
}

// InService reports whether the notebook is up and reachable.
func (n *Notebook) InService() bool {
	return n.Status == "InService"
}

// NotebookManager defines the notebook operations used by the status
// handler. Implemented by Client; replaced by mocks in tests.
type NotebookManager interface {
	// DescribeNotebook returns the notebook state, or an error satisfying
	// IsNotFound if no instance with that name exists.
	DescribeNotebook(ctx context.Context, name string) (*Notebook, error)
}

// api is the slice of the SageMaker SDK client this package uses.
type api interface {
	DescribeNotebookInstance(ctx context.Context, in *sagemaker.DescribeNotebookInstanceInput, opts ...func(*sagemaker.Options)) (*sagemaker.DescribeNotebookInstanceOutput, error)
}

// Client implements NotebookManager against the real SageMaker API.
type Client struct {
	sm api
}

// NewClient creates a SageMaker client from an AWS SDK configuration.
func NewClient(awsCfg aws.Config) *Client {
	return &Client{sm: sagemaker.NewFromConfig(awsCfg)}
}

// DescribeNotebook implements NotebookManager.
func (c *Client) DescribeNotebook(ctx context.Context, name string) (*Notebook, error) {
	out, err := c.sm.DescribeNotebookInstance(ctx, &sagemaker.DescribeNotebookInstanceInput{
		NotebookInstanceName: aws.String(name),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, &NotFoundError{Name: name}
		}
		return nil, fmt.Errorf("failed to describe notebook instance %s: %w", name, err)
	}

	nb := &Notebook{
		Name:          aws.ToString(out.NotebookInstanceName),
		Status:        string(out.NotebookInstanceStatus),
		InstanceType:  string(out.InstanceType),
		RoleArn:       aws.ToString(out.RoleArn),
		URL:           aws.ToString(out.Url),
		RepositoryURL: aws.ToString(out.DefaultCodeRepository),
		FailureReason: aws.ToString(out.FailureReason),
	}
	if out.VolumeSizeInGB != nil {
		nb.VolumeSizeGB = *out.VolumeSizeInGB
	}
	return nb, nil
}

// NotFoundError reports that a notebook instance does not exist.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("notebook instance %s does not exist", e.Name)
}

// IsNotFound reports whether err indicates a missing notebook instance.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// isNotFound checks the SageMaker error shape for a missing instance.
// DescribeNotebookInstance reports it as a ValidationException mentioning
// RecordNotFound rather than a typed exception.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "ValidationException" &&
			strings.Contains(apiErr.ErrorMessage(), "RecordNotFound")
	}
	return false
}
