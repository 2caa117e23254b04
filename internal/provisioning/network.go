package provisioning

import (
	"fmt"
	"strings"
)

// NetworkPhase resolves the VPC and subnets a Studio domain attaches to. It
// runs between validation and stack submission, so configuration errors are
// still caught before the first AWS call, but the stack phase receives a
// concrete placement.
type NetworkPhase struct{}

// NewNetworkPhase creates the Studio network resolution phase.
func NewNetworkPhase() *NetworkPhase {
	return &NetworkPhase{}
}

// Name implements Phase.
func (p *NetworkPhase) Name() string {
	return "network"
}

// Provision implements Phase.
func (p *NetworkPhase) Provision(ctx *Context) error {
	if ctx.Network == nil {
		return fmt.Errorf("no network discoverer configured")
	}

	studio := ctx.Config.Studio
	net, err := ctx.Network.DiscoverNetwork(ctx, studio.VpcID, studio.SubnetIDs)
	if err != nil {
		return fmt.Errorf("network resolution failed: %w", err)
	}
	ctx.State.Network = net

	ctx.Observer.Event(Event{
		Type:     EventNetworkResolved,
		Phase:    p.Name(),
		Resource: net.VpcID,
		Message:  fmt.Sprintf("subnets %s", strings.Join(net.SubnetIDs, ", ")),
	})
	return nil
}
