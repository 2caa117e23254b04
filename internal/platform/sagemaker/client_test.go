package sagemaker

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sagemaker"
	"github.com/aws/aws-sdk-go-v2/service/sagemaker/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	out *sagemaker.DescribeNotebookInstanceOutput
	err error
}

func (f *fakeAPI) DescribeNotebookInstance(_ context.Context, _ *sagemaker.DescribeNotebookInstanceInput, _ ...func(*sagemaker.Options)) (*sagemaker.DescribeNotebookInstanceOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

func TestDescribeNotebook(t *testing.T) {
	client := &Client{sm: &fakeAPI{out: &sagemaker.DescribeNotebookInstanceOutput{
		NotebookInstanceName:   aws.String("ForecastPOCNotebook"),
		NotebookInstanceStatus: types.NotebookInstanceStatusInService,
		InstanceType:           types.InstanceTypeMlT2Medium,
		VolumeSizeInGB:         aws.Int32(10),
		RoleArn:                aws.String("arn:aws:iam::123456789012:role/ForecastPOC-Role"),
		Url:                    aws.String("forecastpocnotebook.notebook.us-east-1.sagemaker.aws"),
		DefaultCodeRepository:  aws.String("https://github.com/apac-ml-tfc/forecast-poc.git"),
	}}}

	nb, err := client.DescribeNotebook(context.Background(), "ForecastPOCNotebook")
	require.NoError(t, err)

	assert.Equal(t, "ForecastPOCNotebook", nb.Name)
	assert.Equal(t, "InService", nb.Status)
	assert.True(t, nb.InService())
	assert.Equal(t, "ml.t2.medium", nb.InstanceType)
	assert.Equal(t, int32(10), nb.VolumeSizeGB)
	assert.Equal(t, "https://github.com/apac-ml-tfc/forecast-poc.git", nb.RepositoryURL)
}

func TestDescribeNotebook_NotFound(t *testing.T) {
	client := &Client{sm: &fakeAPI{err: &smithy.GenericAPIError{
		Code:    "ValidationException",
		Message: "RecordNotFound: Notebook Instance arn not found",
	}}}

	_, err := client.DescribeNotebook(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "does not exist")
}

func TestDescribeNotebook_OtherError(t *testing.T) {
	client := &Client{sm: &fakeAPI{err: fmt.Errorf("throttled")}}

	_, err := client.DescribeNotebook(context.Background(), "ForecastPOCNotebook")
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "failed to describe notebook instance")
}

func TestNotebookInService(t *testing.T) {
	assert.False(t, (&Notebook{Status: "Pending"}).InService())
	assert.True(t, (&Notebook{Status: "InService"}).InService())
}
