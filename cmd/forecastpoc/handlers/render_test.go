package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/apac-ml-tfc/forecast-poc/internal/platform/cloudformation"
	"github.com/apac-ml-tfc/forecast-poc/internal/provisioning"
)

func TestRenderDeploySummaryCreated(t *testing.T) {
	state := provisioning.NewState()
	state.Operation = cloudformation.OpCreated
	state.NotebookName = "ForecastPOCNotebook"
	state.RoleArn = "arn:aws:iam::123456789012:role/TestPOC-SageMakerIamRole"

	out := renderDeploySummary(testConfig(), state)
	assert.Contains(t, out, "TestPOC")
	assert.Contains(t, out, "Environment created")
	assert.Contains(t, out, "ForecastPOCNotebook")
	assert.Contains(t, out, "forecastpoc status")
}

func TestRenderDeploySummaryStudio(t *testing.T) {
	state := provisioning.NewState()
	state.Operation = cloudformation.OpCreated
	state.DomainID = "d-abc123"
	state.RoleArn = "arn:aws:iam::123456789012:role/TestPOC-SageMakerIamRole"

	out := renderDeploySummary(testConfig(), state)
	assert.Contains(t, out, "d-abc123")
	assert.Contains(t, out, "user profile")
	assert.NotContains(t, out, "Notebook:")
}

func TestRenderDeploySummaryUnchanged(t *testing.T) {
	state := provisioning.NewState()
	state.Operation = cloudformation.OpUnchanged

	out := renderDeploySummary(testConfig(), state)
	assert.Contains(t, out, "already up to date")
}

func TestRenderStatusNotDeployed(t *testing.T) {
	out := renderStatus(&EnvironmentStatus{StackName: "TestPOC", Region: "us-east-1"})
	assert.Contains(t, out, "Not deployed")
	assert.Contains(t, out, "forecastpoc deploy")
}

func TestRenderStatusDeployed(t *testing.T) {
	out := renderStatus(&EnvironmentStatus{
		StackName:   "TestPOC",
		Region:      "us-east-1",
		Deployed:    true,
		StackStatus: "CREATE_COMPLETE",
		RoleArn:     "arn:aws:iam::123456789012:role/TestPOC-SageMakerIamRole",
		Notebook: &NotebookStatus{
			Name:         "ForecastPOCNotebook",
			Status:       "InService",
			InstanceType: "ml.t2.medium",
			VolumeSizeGB: 10,
			URL:          "forecastpocnotebook.notebook.us-east-1.sagemaker.aws",
		},
	})
	assert.Contains(t, out, "CREATE_COMPLETE")
	assert.Contains(t, out, "ForecastPOCNotebook")
	assert.Contains(t, out, "InService")
	assert.Contains(t, out, "https://forecastpocnotebook.notebook.us-east-1.sagemaker.aws")
}

func TestStackIndicator(t *testing.T) {
	assert.Equal(t, "✅", stackIndicator("CREATE_COMPLETE"))
	assert.Equal(t, "⏳", stackIndicator("UPDATE_IN_PROGRESS"))
	assert.Equal(t, "❌", stackIndicator("ROLLBACK_COMPLETE"))
}
