package provisioning

import (
	"fmt"

	"github.com/apac-ml-tfc/forecast-poc/internal/platform/cloudformation"
	"github.com/apac-ml-tfc/forecast-poc/internal/template"
)

// StackPhase submits the rendered description to CloudFormation and waits
// for the engine to reach a terminal state. All dependency ordering and
// rollback is the engine's responsibility.
type StackPhase struct{}

// NewStackPhase creates the stack submission phase.
func NewStackPhase() *StackPhase {
	return &StackPhase{}
}

// Name implements Phase.
func (p *StackPhase) Name() string {
	return "stack"
}

// Provision implements Phase.
func (p *StackPhase) Provision(ctx *Context) error {
	if ctx.State.TemplateBody == "" {
		return fmt.Errorf("no template body in state; validation phase must run first")
	}

	params, err := p.parameters(ctx)
	if err != nil {
		return err
	}

	name := ctx.Config.StackName
	op, err := ctx.Stacks.CreateOrUpdate(ctx, name, ctx.State.TemplateBody, params)
	if err != nil {
		return err
	}
	ctx.State.Operation = op

	if op == cloudformation.OpUnchanged {
		ctx.Observer.Event(Event{
			Type:     EventStackUnchanged,
			Phase:    p.Name(),
			Resource: name,
			Message:  "description matches materialized stack; nothing to do",
		})
		// Still describe, so outputs are populated for the caller.
		stack, err := ctx.Stacks.Describe(ctx, name)
		if err != nil {
			return err
		}
		p.recordState(ctx, stack)
		return nil
	}

	ctx.Observer.Event(Event{
		Type:     EventStackSubmitted,
		Phase:    p.Name(),
		Resource: name,
		Message:  fmt.Sprintf("stack %s, waiting for engine", op),
	})

	stack, err := ctx.Stacks.WaitForOperation(ctx, name, NewStatusReporter(ctx.Observer, p.Name()))
	if err != nil {
		return err
	}
	p.recordState(ctx, stack)

	ctx.Observer.Event(Event{
		Type:     EventStackComplete,
		Phase:    p.Name(),
		Resource: name,
		Message:  stack.Status,
		Fields:   stack.Outputs,
	})
	return nil
}

// parameters picks the stack parameters for the configured variant. Studio
// parameters need the placement the network phase resolved.
func (p *StackPhase) parameters(ctx *Context) (map[string]string, error) {
	if !ctx.Config.Studio.Enabled {
		return ctx.Config.Parameters(), nil
	}
	if ctx.State.Network == nil {
		return nil, fmt.Errorf("no network placement in state; network phase must run first")
	}
	return ctx.Config.StudioParameters(ctx.State.Network.VpcID, ctx.State.Network.SubnetIDs), nil
}

// recordState copies the stack identity and outputs into provisioning state.
func (p *StackPhase) recordState(ctx *Context, stack *cloudformation.Stack) {
	ctx.State.StackID = stack.ID
	ctx.State.Outputs = stack.Outputs
	ctx.State.RoleArn = stack.Outputs[template.OutputRoleArn]
	ctx.State.NotebookName = stack.Outputs[template.OutputNotebookName]
	ctx.State.DomainID = stack.Outputs[template.OutputDomainID]
}
