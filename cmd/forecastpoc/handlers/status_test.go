package handlers

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apac-ml-tfc/forecast-poc/internal/platform/cloudformation"
	"github.com/apac-ml-tfc/forecast-poc/internal/platform/sagemaker"
)

// fakeNotebooks is a scriptable NotebookManager.
type fakeNotebooks struct {
	notebook *sagemaker.Notebook
	err      error
}

func (f *fakeNotebooks) DescribeNotebook(_ context.Context, _ string) (*sagemaker.Notebook, error) {
	return f.notebook, f.err
}

func swapNotebooks(notebooks *fakeNotebooks) func() {
	orig := newNotebookManager
	newNotebookManager = func(_ aws.Config) sagemaker.NotebookManager { return notebooks }
	return func() { newNotebookManager = orig }
}

func TestStatusDeployed(t *testing.T) {
	stacks := &fakeStacks{describe: completeStack()}
	defer swapFactories(testConfig(), stacks)()
	defer swapNotebooks(&fakeNotebooks{notebook: &sagemaker.Notebook{
		Name:   "ForecastPOCNotebook",
		Status: "InService",
		URL:    "forecastpocnotebook.notebook.us-east-1.sagemaker.aws",
	}})()

	err := Status(context.Background(), "forecastpoc.yaml", true)
	require.NoError(t, err)
}

func TestStatusNotDeployed(t *testing.T) {
	stacks := &fakeStacks{describeErr: &cloudformation.NotFoundError{Name: "TestPOC"}}
	defer swapFactories(testConfig(), stacks)()

	err := Status(context.Background(), "forecastpoc.yaml", true)
	require.NoError(t, err)
}

func TestStatusDescribeFailure(t *testing.T) {
	stacks := &fakeStacks{describeErr: assert.AnError}
	defer swapFactories(testConfig(), stacks)()

	err := Status(context.Background(), "forecastpoc.yaml", true)
	require.Error(t, err)
}

func TestNotebookNamePrefersStackOutput(t *testing.T) {
	assert.Equal(t, "ForecastPOCNotebook", notebookName(completeStack(), "configured"))

	bare := &cloudformation.Stack{Outputs: map[string]string{}}
	assert.Equal(t, "configured", notebookName(bare, "configured"))
}

func TestDescribeNotebookMissingIsPending(t *testing.T) {
	defer swapNotebooks(&fakeNotebooks{err: &sagemaker.NotFoundError{Name: "nb"}})()

	nb := describeNotebook(context.Background(), aws.Config{}, "nb")
	assert.Equal(t, "Pending", nb.Status)
}

func TestDescribeNotebookErrorIsUnknown(t *testing.T) {
	defer swapNotebooks(&fakeNotebooks{err: assert.AnError})()

	nb := describeNotebook(context.Background(), aws.Config{}, "nb")
	assert.Equal(t, "Unknown", nb.Status)
	assert.NotEmpty(t, nb.FailureReason)
}
