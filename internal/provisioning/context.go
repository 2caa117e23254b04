package provisioning

import (
	"context"

	"github.com/apac-ml-tfc/forecast-poc/internal/config"
	"github.com/apac-ml-tfc/forecast-poc/internal/platform/cloudformation"
	"github.com/apac-ml-tfc/forecast-poc/internal/platform/ec2"
)

// State holds the shared results of provisioning phases. It is progressively
// populated as each phase completes.
type State struct {
	// TemplateBody is the rendered stack description (populated by the
	// validation phase, consumed by the stack phase).
	TemplateBody string

	// Network is the resolved Studio placement (populated by the network
	// phase, consumed by the stack phase; nil for notebook deployments).
	Network *ec2.Network

	// Stack results (populated by the stack phase)
	StackID      string
	Operation    cloudformation.Op
	RoleArn      string
	NotebookName string
	DomainID     string
	Outputs      map[string]string
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{
		Outputs: make(map[string]string),
	}
}

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	Stacks   cloudformation.StackManager
	Network  ec2.NetworkDiscoverer
	Observer Observer
}

// NewContext creates a new provisioning context. Network starts nil; Studio
// deployments attach a discoverer before running the network phase.
func NewContext(ctx context.Context, cfg *config.Config, stacks cloudformation.StackManager) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    NewState(),
		Stacks:   stacks,
		Observer: NewConsoleObserver(),
	}
}
