package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStage(t *testing.T) {
	cmd := Stage()

	require.NotNil(t, cmd)
	assert.Equal(t, "stage <file> <bucket>", cmd.Use)
}

func TestStage_RequiresFileAndBucketArgs(t *testing.T) {
	cmd := Stage()

	assert.Error(t, cmd.Args(cmd, []string{}))
	assert.Error(t, cmd.Args(cmd, []string{"data.csv"}))
	assert.NoError(t, cmd.Args(cmd, []string{"data.csv", "my-bucket"}))
}

func TestStage_KeyFlag(t *testing.T) {
	cmd := Stage()

	flag := cmd.Flags().Lookup("key")
	require.NotNil(t, flag)
	assert.Equal(t, "k", flag.Shorthand)
}
