// Package provisioning orchestrates the Forecast POC stack rollout: local
// pre-flight validation followed by submission of the declarative template
// to CloudFormation and observation of the engine's result.
//
// The pipeline itself holds no failure-handling logic beyond surfacing what
// the engine reports; rollback and dependency ordering belong to
// CloudFormation.
package provisioning

// Phase defines the interface for a provisioning phase.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Provision executes the provisioning logic for this phase.
	Provision(ctx *Context) error
}

// Logger is the minimal logging interface phases use for free-form output.
type Logger interface {
	Printf(format string, v ...interface{})
}
