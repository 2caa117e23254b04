package provisioning

import (
	"github.com/apac-ml-tfc/forecast-poc/internal/platform/cloudformation"
)

// DestroyPhase tears the stack down. Deletion order and cleanup semantics
// are the engine's; deleting an absent stack is a no-op.
type DestroyPhase struct{}

// NewDestroyPhase creates the stack teardown phase.
func NewDestroyPhase() *DestroyPhase {
	return &DestroyPhase{}
}

// Name implements Phase.
func (p *DestroyPhase) Name() string {
	return "destroy"
}

// Provision implements Phase.
func (p *DestroyPhase) Provision(ctx *Context) error {
	name := ctx.Config.StackName

	if _, err := ctx.Stacks.Describe(ctx, name); err != nil {
		if cloudformation.IsNotFound(err) {
			ctx.Observer.Printf("Stack %s does not exist; nothing to destroy", name)
			return nil
		}
		return err
	}

	if err := ctx.Stacks.Delete(ctx, name); err != nil {
		return err
	}

	return ctx.Stacks.WaitForDelete(ctx, name, NewStatusReporter(ctx.Observer, p.Name()))
}
