package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apac-ml-tfc/forecast-poc/internal/platform/cloudformation"
)

func TestDestroy(t *testing.T) {
	stacks := &fakeStacks{describe: completeStack()}
	defer swapFactories(testConfig(), stacks)()

	err := Destroy(context.Background(), "forecastpoc.yaml")
	require.NoError(t, err)
	assert.Equal(t, 1, stacks.deleteCalls)
}

func TestDestroyMissingStackIsNoOp(t *testing.T) {
	stacks := &fakeStacks{describeErr: &cloudformation.NotFoundError{Name: "TestPOC"}}
	defer swapFactories(testConfig(), stacks)()

	err := Destroy(context.Background(), "forecastpoc.yaml")
	require.NoError(t, err)
	assert.Equal(t, 0, stacks.deleteCalls)
}

func TestDestroyDeleteFailure(t *testing.T) {
	stacks := &fakeStacks{describe: completeStack(), deleteErr: assert.AnError}
	defer swapFactories(testConfig(), stacks)()

	err := Destroy(context.Background(), "forecastpoc.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "destroy failed")
}
