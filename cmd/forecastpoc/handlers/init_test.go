package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apac-ml-tfc/forecast-poc/internal/config"
)

func TestInit(t *testing.T) {
	origExists := fileExists
	origWizard := runWizard
	origWrite := writeConfig
	defer func() {
		fileExists = origExists
		runWizard = origWizard
		writeConfig = origWrite
	}()

	fileExists = func(_ string) bool { return false }
	runWizard = func(_ context.Context) (*config.WizardResult, error) {
		return &config.WizardResult{
			StackName:    "MyPOC",
			Region:       "eu-west-1",
			NotebookName: "MyNotebook",
			InstanceType: "ml.t3.large",
			VolumeSizeGB: 20,
			RepoURL:      config.Default().Notebook.RepoURL,
		}, nil
	}

	var written *config.Config
	var writtenPath string
	writeConfig = func(cfg *config.Config, path string) error {
		written = cfg
		writtenPath = path
		return nil
	}

	err := Init(context.Background(), "forecastpoc.yaml")
	require.NoError(t, err)

	assert.Equal(t, "forecastpoc.yaml", writtenPath)
	require.NotNil(t, written)
	assert.Equal(t, "MyPOC", written.StackName)
	assert.Equal(t, "eu-west-1", written.Region)
	assert.Equal(t, "MyNotebook", written.Notebook.Name)
	assert.Equal(t, 20, written.Notebook.VolumeSizeGB)
}

func TestInitWizardCanceled(t *testing.T) {
	origExists := fileExists
	origWizard := runWizard
	defer func() {
		fileExists = origExists
		runWizard = origWizard
	}()

	fileExists = func(_ string) bool { return false }
	runWizard = func(_ context.Context) (*config.WizardResult, error) {
		return nil, assert.AnError
	}

	err := Init(context.Background(), "forecastpoc.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wizard canceled")
}
