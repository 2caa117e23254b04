package handlers

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apac-ml-tfc/forecast-poc/internal/platform/iam"
)

// fakeRoles is a scriptable RoleManager.
type fakeRoles struct {
	arn     string
	err     error
	gotName string
}

func (f *fakeRoles) EnsureForecastRole(_ context.Context, roleName string) (string, error) {
	f.gotName = roleName
	return f.arn, f.err
}

func TestRole(t *testing.T) {
	roles := &fakeRoles{arn: "arn:aws:iam::123456789012:role/ForecastPOCRole"}
	defer swapFactories(testConfig(), &fakeStacks{})()

	origRoles := newRoleManager
	defer func() { newRoleManager = origRoles }()
	newRoleManager = func(_ aws.Config) iam.RoleManager { return roles }

	err := Role(context.Background(), "forecastpoc.yaml", iam.DefaultRoleName)
	require.NoError(t, err)
	assert.Equal(t, "ForecastPOCRole", roles.gotName)
}

func TestRoleFailure(t *testing.T) {
	defer swapFactories(testConfig(), &fakeStacks{})()

	origRoles := newRoleManager
	defer func() { newRoleManager = origRoles }()
	newRoleManager = func(_ aws.Config) iam.RoleManager { return &fakeRoles{err: assert.AnError} }

	err := Role(context.Background(), "forecastpoc.yaml", "SomeRole")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ensure role")
}
