package cloudformation

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI is a scriptable implementation of the api interface.
type fakeAPI struct {
	createErr error
	updateErr error
	deleteErr error

	describeOutputs []*cloudformation.DescribeStacksOutput
	describeErrs    []error
	describeCalls   int

	createCalls int
	updateCalls int
	deleteCalls int
}

func (f *fakeAPI) CreateStack(_ context.Context, _ *cloudformation.CreateStackInput, _ ...func(*cloudformation.Options)) (*cloudformation.CreateStackOutput, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &cloudformation.CreateStackOutput{StackId: aws.String("arn:aws:cloudformation:us-east-1:123456789012:stack/ForecastPOC/abc")}, nil
}

func (f *fakeAPI) UpdateStack(_ context.Context, _ *cloudformation.UpdateStackInput, _ ...func(*cloudformation.Options)) (*cloudformation.UpdateStackOutput, error) {
	f.updateCalls++
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &cloudformation.UpdateStackOutput{}, nil
}

func (f *fakeAPI) DescribeStacks(_ context.Context, _ *cloudformation.DescribeStacksInput, _ ...func(*cloudformation.Options)) (*cloudformation.DescribeStacksOutput, error) {
	i := f.describeCalls
	f.describeCalls++
	if i < len(f.describeErrs) && f.describeErrs[i] != nil {
		return nil, f.describeErrs[i]
	}
	if i >= len(f.describeOutputs) {
		i = len(f.describeOutputs) - 1
	}
	return f.describeOutputs[i], nil
}

func (f *fakeAPI) DeleteStack(_ context.Context, _ *cloudformation.DeleteStackInput, _ ...func(*cloudformation.Options)) (*cloudformation.DeleteStackOutput, error) {
	f.deleteCalls++
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return &cloudformation.DeleteStackOutput{}, nil
}

func newTestClient(api *fakeAPI) *Client {
	return &Client{cfn: api, pollInterval: time.Millisecond}
}

func describeOutput(status types.StackStatus, reason string) *cloudformation.DescribeStacksOutput {
	stack := types.Stack{
		StackId:     aws.String("stack-id"),
		StackName:   aws.String("ForecastPOC"),
		StackStatus: status,
	}
	if reason != "" {
		stack.StackStatusReason = aws.String(reason)
	}
	return &cloudformation.DescribeStacksOutput{Stacks: []types.Stack{stack}}
}

func validationError(message string) error {
	return &smithy.GenericAPIError{Code: "ValidationError", Message: message}
}

func TestCreateOrUpdate_CreatesNewStack(t *testing.T) {
	api := &fakeAPI{}
	op, err := newTestClient(api).CreateOrUpdate(context.Background(), "ForecastPOC", "tpl", nil)

	require.NoError(t, err)
	assert.Equal(t, OpCreated, op)
	assert.Equal(t, 1, api.createCalls)
	assert.Equal(t, 0, api.updateCalls)
}

func TestCreateOrUpdate_UpdatesExistingStack(t *testing.T) {
	api := &fakeAPI{createErr: &types.AlreadyExistsException{}}
	op, err := newTestClient(api).CreateOrUpdate(context.Background(), "ForecastPOC", "tpl", nil)

	require.NoError(t, err)
	assert.Equal(t, OpUpdated, op)
	assert.Equal(t, 1, api.updateCalls)
}

func TestCreateOrUpdate_IdenticalResubmissionIsNoOp(t *testing.T) {
	api := &fakeAPI{
		createErr: &types.AlreadyExistsException{},
		updateErr: validationError("No updates are to be performed."),
	}
	op, err := newTestClient(api).CreateOrUpdate(context.Background(), "ForecastPOC", "tpl", nil)

	require.NoError(t, err)
	assert.Equal(t, OpUnchanged, op)
}

func TestCreateOrUpdate_CreateFailure(t *testing.T) {
	api := &fakeAPI{createErr: fmt.Errorf("limit exceeded")}
	_, err := newTestClient(api).CreateOrUpdate(context.Background(), "ForecastPOC", "tpl", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create stack")
}

func TestDescribe_NotFound(t *testing.T) {
	api := &fakeAPI{describeErrs: []error{validationError("Stack with id ForecastPOC does not exist")}}
	_, err := newTestClient(api).Describe(context.Background(), "ForecastPOC")

	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestDescribe_MapsOutputs(t *testing.T) {
	out := describeOutput(types.StackStatusCreateComplete, "")
	out.Stacks[0].Outputs = []types.Output{
		{OutputKey: aws.String("RoleArn"), OutputValue: aws.String("arn:aws:iam::123456789012:role/ForecastPOC-Role")},
		{OutputKey: aws.String("NotebookInstanceName"), OutputValue: aws.String("ForecastPOCNotebook")},
	}
	api := &fakeAPI{describeOutputs: []*cloudformation.DescribeStacksOutput{out}}

	stack, err := newTestClient(api).Describe(context.Background(), "ForecastPOC")
	require.NoError(t, err)
	assert.Equal(t, "CREATE_COMPLETE", stack.Status)
	assert.Equal(t, "arn:aws:iam::123456789012:role/ForecastPOC-Role", stack.Outputs["RoleArn"])
	assert.Equal(t, "ForecastPOCNotebook", stack.Outputs["NotebookInstanceName"])
}

func TestWaitForOperation_ReportsTransitions(t *testing.T) {
	api := &fakeAPI{describeOutputs: []*cloudformation.DescribeStacksOutput{
		describeOutput(types.StackStatusCreateInProgress, ""),
		describeOutput(types.StackStatusCreateInProgress, ""),
		describeOutput(types.StackStatusCreateComplete, ""),
	}}

	var statuses []string
	stack, err := newTestClient(api).WaitForOperation(context.Background(), "ForecastPOC", func(s string) {
		statuses = append(statuses, s)
	})

	require.NoError(t, err)
	assert.Equal(t, "CREATE_COMPLETE", stack.Status)
	assert.Equal(t, []string{"CREATE_IN_PROGRESS", "CREATE_IN_PROGRESS", "CREATE_COMPLETE"}, statuses)
}

func TestWaitForOperation_RollbackIsFailure(t *testing.T) {
	api := &fakeAPI{describeOutputs: []*cloudformation.DescribeStacksOutput{
		describeOutput(types.StackStatusCreateInProgress, ""),
		describeOutput(types.StackStatusRollbackInProgress, "Resource creation cancelled"),
	}}

	_, err := newTestClient(api).WaitForOperation(context.Background(), "ForecastPOC", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ROLLBACK_IN_PROGRESS")
	assert.Contains(t, err.Error(), "Resource creation cancelled")
}

func TestDelete_MissingStackIsNoOp(t *testing.T) {
	api := &fakeAPI{deleteErr: validationError("Stack with id ForecastPOC does not exist")}
	err := newTestClient(api).Delete(context.Background(), "ForecastPOC")
	assert.NoError(t, err)
}

func TestWaitForDelete_FinishesWhenGone(t *testing.T) {
	api := &fakeAPI{
		describeOutputs: []*cloudformation.DescribeStacksOutput{
			describeOutput(types.StackStatusDeleteInProgress, ""),
		},
		describeErrs: []error{nil, validationError("Stack with id ForecastPOC does not exist")},
	}

	err := newTestClient(api).WaitForDelete(context.Background(), "ForecastPOC", nil)
	assert.NoError(t, err)
}

func TestWaitForDelete_DeleteFailed(t *testing.T) {
	api := &fakeAPI{describeOutputs: []*cloudformation.DescribeStacksOutput{
		describeOutput(types.StackStatusDeleteFailed, "role in use"),
	}}

	err := newTestClient(api).WaitForDelete(context.Background(), "ForecastPOC", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DELETE_FAILED")
}

func TestToParameters_StableOrder(t *testing.T) {
	params := toParameters(map[string]string{
		"VolumeSize":   "10",
		"NotebookName": "ForecastPOCNotebook",
		"InstanceType": "ml.t3.medium",
	})

	require.Len(t, params, 3)
	assert.Equal(t, "InstanceType", *params[0].ParameterKey)
	assert.Equal(t, "NotebookName", *params[1].ParameterKey)
	assert.Equal(t, "VolumeSize", *params[2].ParameterKey)
}

func TestIsNoUpdates(t *testing.T) {
	assert.True(t, isNoUpdates(validationError("No updates are to be performed.")))
	assert.False(t, isNoUpdates(validationError("Template format error")))
	assert.False(t, isNoUpdates(fmt.Errorf("plain error")))
	assert.False(t, isNoUpdates(nil))
}

func TestIsAlreadyExists(t *testing.T) {
	assert.True(t, isAlreadyExists(&types.AlreadyExistsException{}))
	assert.True(t, isAlreadyExists(&smithy.GenericAPIError{Code: "AlreadyExistsException", Message: "Stack already exists"}))
	assert.False(t, isAlreadyExists(fmt.Errorf("plain error")))
}
